package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
)

// JournalEntryItemResponse defines the data returned for a journal line item.
type JournalEntryItemResponse struct {
	ItemID      string          `json:"itemID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID        string                     `json:"entryID"`
	EntryNumber    string                     `json:"entryNumber"`
	EntryDate      time.Time                  `json:"entryDate"`
	Description    string                     `json:"description"`
	Reference      string                     `json:"reference"`
	Status         string                     `json:"status"`
	TotalDebit     decimal.Decimal            `json:"totalDebit"`
	TotalCredit    decimal.Decimal            `json:"totalCredit"`
	PayrollBatchID *string                    `json:"payrollBatchID,omitempty"`
	TransactionID  *string                    `json:"transactionID,omitempty"`
	Items          []JournalEntryItemResponse `json:"items,omitempty"`
}

// ListJournalEntriesParams holds parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalEntriesResponse is the paginated journal entry listing.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// CashTransactionResponse defines the data returned for a cash transaction.
type CashTransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	ReferenceID     string          `json:"referenceID"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	Description     string          `json:"description"`
	PaymentMethod   string          `json:"paymentMethod"`
	TransactionDate time.Time       `json:"transactionDate"`
	PayrollBatchID  *string         `json:"payrollBatchID,omitempty"`
}

// ToJournalEntryItemResponse converts a domain item to its response DTO.
func ToJournalEntryItemResponse(item *domain.JournalEntryItem) JournalEntryItemResponse {
	return JournalEntryItemResponse{
		ItemID:      item.ItemID,
		AccountID:   item.AccountID,
		Debit:       item.Debit,
		Credit:      item.Credit,
		Description: item.Description,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:        entry.EntryID,
		EntryNumber:    entry.EntryNumber,
		EntryDate:      entry.EntryDate,
		Description:    entry.Description,
		Reference:      entry.Reference,
		Status:         string(entry.Status),
		TotalDebit:     entry.TotalDebit,
		TotalCredit:    entry.TotalCredit,
		PayrollBatchID: entry.PayrollBatchID,
		TransactionID:  entry.TransactionID,
	}
	if len(entry.Items) > 0 {
		resp.Items = make([]JournalEntryItemResponse, len(entry.Items))
		for i, item := range entry.Items {
			resp.Items[i] = ToJournalEntryItemResponse(&item)
		}
	}
	return resp
}

// ToCashTransactionResponse converts a domain.CashTransaction to its response DTO.
func ToCashTransactionResponse(txn *domain.CashTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		TransactionID:   txn.TransactionID,
		ReferenceID:     txn.ReferenceID,
		Type:            string(txn.Type),
		Category:        txn.Category,
		Amount:          txn.Amount,
		CurrencyCode:    txn.CurrencyCode,
		Description:     txn.Description,
		PaymentMethod:   string(txn.PaymentMethod),
		TransactionDate: txn.TransactionDate,
		PayrollBatchID:  txn.PayrollBatchID,
	}
}
