package mapping

import (
	"encoding/json"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	"github.com/clearledger/payroll_ledger_app/internal/models"
)

// ToModelCashTransaction converts a domain CashTransaction to a model
// CashTransaction, marshalling the typed metadata into the JSONB payload.
func ToModelCashTransaction(d domain.CashTransaction) (models.CashTransaction, error) {
	metadata, err := json.Marshal(d.Metadata)
	if err != nil {
		return models.CashTransaction{}, err
	}
	return models.CashTransaction{
		TransactionID:   d.TransactionID,
		ReferenceID:     d.ReferenceID,
		Type:            string(d.Type),
		Category:        d.Category,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Description:     d.Description,
		PaymentMethod:   string(d.PaymentMethod),
		TransactionDate: d.TransactionDate,
		PayrollBatchID:  d.PayrollBatchID,
		Metadata:        metadata,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainCashTransaction converts a model CashTransaction to a domain CashTransaction
func ToDomainCashTransaction(m models.CashTransaction) (domain.CashTransaction, error) {
	var metadata domain.TransactionMetadata
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return domain.CashTransaction{}, err
		}
	}
	return domain.CashTransaction{
		TransactionID:   m.TransactionID,
		ReferenceID:     m.ReferenceID,
		Type:            domain.TransactionType(m.Type),
		Category:        m.Category,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Description:     m.Description,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		TransactionDate: m.TransactionDate,
		PayrollBatchID:  m.PayrollBatchID,
		Metadata:        metadata,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}, nil
}
