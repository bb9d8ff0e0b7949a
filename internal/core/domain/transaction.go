package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a cash movement.
type TransactionType string

const (
	TransactionExpense TransactionType = "EXPENSE"
)

// PaymentMethod indicates how a cash movement was disbursed.
type PaymentMethod string

const (
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// TransactionMetadata is the audit trail carried on a cash transaction.
// It records who created the transaction and, after an idempotent re-post,
// who last updated it.
type TransactionMetadata struct {
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedBy *string    `json:"updatedBy,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CashTransaction records the cash-side business movement of a payroll
// disbursement, tied one-to-one to a payment journal entry.
type CashTransaction struct {
	TransactionID   string              `json:"transactionID"` // Primary Key (UUID)
	ReferenceID     string              `json:"referenceID"`   // Idempotency key, e.g. PAYROLL-PAY-{timestamp}
	Type            TransactionType     `json:"type"`
	Category        string              `json:"category"`
	Amount          decimal.Decimal     `json:"amount"`
	CurrencyCode    string              `json:"currencyCode"`
	Description     string              `json:"description"`
	PaymentMethod   PaymentMethod       `json:"paymentMethod"`
	TransactionDate time.Time           `json:"transactionDate"`
	PayrollBatchID  *string             `json:"payrollBatchID"` // At most one payment transaction per batch
	Metadata        TransactionMetadata `json:"metadata"`
	AuditFields
}
