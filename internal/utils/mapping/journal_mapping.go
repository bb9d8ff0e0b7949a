package mapping

import (
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	"github.com/clearledger/payroll_ledger_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		EntryNumber:    d.EntryNumber,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		Reference:      d.Reference,
		Status:         models.EntryStatus(d.Status),
		TotalDebit:     d.TotalDebit,
		TotalCredit:    d.TotalCredit,
		PayrollBatchID: d.PayrollBatchID,
		TransactionID:  d.TransactionID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		EntryNumber:    m.EntryNumber,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		Reference:      m.Reference,
		Status:         domain.EntryStatus(m.Status),
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		PayrollBatchID: m.PayrollBatchID,
		TransactionID:  m.TransactionID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryItem converts a domain JournalEntryItem to a model JournalEntryItem
func ToModelJournalEntryItem(d domain.JournalEntryItem) models.JournalEntryItem {
	return models.JournalEntryItem{
		ItemID:      d.ItemID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
	}
}

// ToDomainJournalEntryItem converts a model JournalEntryItem to a domain JournalEntryItem
func ToDomainJournalEntryItem(m models.JournalEntryItem) domain.JournalEntryItem {
	return domain.JournalEntryItem{
		ItemID:      m.ItemID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}

// ToDomainJournalEntryItemSlice converts a slice of model items to domain items
func ToDomainJournalEntryItemSlice(ms []models.JournalEntryItem) []domain.JournalEntryItem {
	ds := make([]domain.JournalEntryItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryItem(m)
	}
	return ds
}

// ToDomainJournalEntrySlice converts a slice of model entries to domain entries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
