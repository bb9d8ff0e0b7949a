package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	EntryPosted EntryStatus = "POSTED"
)

// JournalEntry mirrors the journal_entries table.
type JournalEntry struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	Status         EntryStatus     `json:"status"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	PayrollBatchID *string         `json:"payrollBatchID"`
	TransactionID  *string         `json:"transactionID"`
	AuditFields
}

// JournalEntryItem mirrors the journal_entry_items table.
type JournalEntryItem struct {
	ItemID      string          `json:"itemID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}
