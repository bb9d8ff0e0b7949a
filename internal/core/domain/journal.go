package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryPosted EntryStatus = "POSTED"
)

// EntryNumberPrefix is the prefix used for payroll journal entry numbers.
const EntryNumberPrefix = "PAY"

// JournalEntry represents a single, balanced bookkeeping record composed of
// multiple line items. TotalDebit and TotalCredit are equal by construction.
type JournalEntry struct {
	EntryID        string          `json:"entryID"`     // Primary Key (UUID)
	EntryNumber    string          `json:"entryNumber"` // Unique, sequential per prefix, e.g. PAY-000001
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"` // Business key for idempotent lookup
	Status         EntryStatus     `json:"status"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	PayrollBatchID *string         `json:"payrollBatchID"`
	TransactionID  *string         `json:"transactionID"`
	AuditFields
	Items []JournalEntryItem `json:"items,omitempty"` // Often loaded separately
}

// JournalEntryItem is a single line within a JournalEntry, debiting or
// crediting one account. Exactly one of Debit/Credit is nonzero per line.
type JournalEntryItem struct {
	ItemID      string          `json:"itemID"` // Primary Key (UUID)
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryKind distinguishes the two payroll postings made per batch.
type EntryKind string

const (
	EntryKindAccrual EntryKind = "ACCRUAL"
	EntryKindPayment EntryKind = "PAYMENT"
)

// PayrollReference builds the idempotency reference for a payroll posting,
// e.g. "PAYROLL:2024-05:ACCRUAL".
func PayrollReference(period string, kind EntryKind) string {
	return fmt.Sprintf("PAYROLL:%s:%s", period, kind)
}

// FormatEntryNumber renders a sequential entry number for a prefix,
// zero-padded to six digits.
func FormatEntryNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}
