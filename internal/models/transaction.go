package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransaction mirrors the cash_transactions table. Metadata is stored as
// a JSONB column and marshalled from the typed domain metadata struct.
type CashTransaction struct {
	TransactionID   string          `json:"transactionID"`
	ReferenceID     string          `json:"referenceID"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Description     string          `json:"description"`
	PaymentMethod   string          `json:"paymentMethod"`
	TransactionDate time.Time       `json:"transactionDate"`
	PayrollBatchID  *string         `json:"payrollBatchID"`
	Metadata        []byte          `json:"metadata"`
	AuditFields
}
