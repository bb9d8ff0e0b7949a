package ports

import (
	"context"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
)

// TxManager runs a function inside a single database transaction. Repository
// calls made with the context passed to fn join that transaction, so a failure
// anywhere rolls back every write performed in fn.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PayrollRecordRepository defines the persistence operations for payroll records.
type PayrollRecordRepository interface {
	SavePayrollRecord(ctx context.Context, record domain.PayrollRecord) error
	FindPayrollRecordByID(ctx context.Context, recordID string) (*domain.PayrollRecord, error)
	// FindPayrollRecordsByBatchID returns every record assigned to the batch,
	// regardless of status.
	FindPayrollRecordsByBatchID(ctx context.Context, batchID string) ([]domain.PayrollRecord, error)
	UpdatePayrollRecord(ctx context.Context, record domain.PayrollRecord) error
}

// PayrollBatchRepository defines the persistence operations for payroll batches.
type PayrollBatchRepository interface {
	SavePayrollBatch(ctx context.Context, batch domain.PayrollBatch) error
	FindBatchByID(ctx context.Context, batchID string) (*domain.PayrollBatch, error)
	// FindOpenBatchByPeriod returns the period's batch whose status is not yet
	// PAID, or ErrNotFound when the period has no open batch.
	FindOpenBatchByPeriod(ctx context.Context, period string) (*domain.PayrollBatch, error)
	UpdatePayrollBatch(ctx context.Context, batch domain.PayrollBatch) error
}

// JournalEntryRepository defines the persistence operations for journal
// entries and their line items. Saving an entry implies saving its items
// atomically; replacing items removes all prior items for the entry first.
type JournalEntryRepository interface {
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem) error
	// FindEntryByReference returns the most recently created entry carrying
	// the reference. References repeat across batches of the same period, so
	// this is a read-surface lookup, not an idempotency key.
	FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error)
	// FindEntryByBatchAndReference returns the batch's entry for the
	// reference, or ErrNotFound. This is the idempotency lookup: each batch
	// owns its own accrual and payment entries.
	FindEntryByBatchAndReference(ctx context.Context, batchID string, reference string) (*domain.JournalEntry, error)
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error)
	// UpdateJournalEntry rewrites the entry header and atomically replaces all
	// of its line items with the given set.
	UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem) error
	// CountEntriesByNumberPrefix counts entries whose entry number starts with
	// the prefix; used to generate the next sequential entry number.
	CountEntriesByNumberPrefix(ctx context.Context, prefix string) (int64, error)
	ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// CashTransactionRepository defines the persistence operations for cash
// movements recorded alongside payment postings.
type CashTransactionRepository interface {
	SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error
	// FindTransactionByBatchID returns the batch's payment transaction, or
	// ErrNotFound when no payment has been posted for the batch yet.
	FindTransactionByBatchID(ctx context.Context, batchID string) (*domain.CashTransaction, error)
	UpdateCashTransaction(ctx context.Context, txn domain.CashTransaction) error
}

// AccountConfigRepository defines the persistence operations for employee
// payroll account configurations. The chart of accounts itself is read-only
// from this module's perspective.
type AccountConfigRepository interface {
	FindConfigByEmployeeID(ctx context.Context, employeeID string) (*domain.PayrollAccountConfig, error)
	FindConfigsByEmployeeIDs(ctx context.Context, employeeIDs []string) (map[string]domain.PayrollAccountConfig, error)
	UpsertConfig(ctx context.Context, config domain.PayrollAccountConfig) error
}

// RepositoryProvider bundles the repositories handed to the service container.
type RepositoryProvider struct {
	TxManager         TxManager
	PayrollRepo       PayrollRecordRepository
	BatchRepo         PayrollBatchRepository
	JournalRepo       JournalEntryRepository
	TransactionRepo   CashTransactionRepository
	AccountConfigRepo AccountConfigRepository
}
