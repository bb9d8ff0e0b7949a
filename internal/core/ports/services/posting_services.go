package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	"github.com/clearledger/payroll_ledger_app/internal/dto"
)

// PostingTotals summarizes an accrual or payment posting.
type PostingTotals struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	RecordCount int             `json:"recordCount"`
}

// AccrualPostingResult is returned by an accrual posting.
type AccrualPostingResult struct {
	Entry  domain.JournalEntry `json:"entry"`
	Totals PostingTotals       `json:"totals"`
}

// PaymentPostingResult is returned by a payment posting.
type PaymentPostingResult struct {
	Entry       domain.JournalEntry    `json:"entry"`
	Transaction domain.CashTransaction `json:"transaction"`
	Totals      PostingTotals          `json:"totals"`
}

// BatchApprovalStamp optionally carries approval metadata through a batch
// accrual posting, so a single approval action both posts the entry and
// finalizes batch approval fields in one write.
type BatchApprovalStamp struct {
	ApprovedBy string
	ApprovedAt time.Time
}

// LedgerPostingSvc defines the write operations of the ledger posting engine.
type LedgerPostingSvc interface {
	// PostPayrollAccrual writes (or idempotently re-writes) the balanced
	// accrual journal entry for a batch's APPROVED and PAID records.
	PostPayrollAccrual(ctx context.Context, batchID string, actorID string) (*AccrualPostingResult, error)

	// PostPayrollPayment writes (or idempotently re-writes) the balanced
	// payment journal entry for a batch's PAID records, upserting the
	// batch's cash transaction alongside.
	PostPayrollPayment(ctx context.Context, batchID string, actorID string) (*PaymentPostingResult, error)
}

// JournalReaderSvc defines read operations for journal entry data.
type JournalReaderSvc interface {
	// GetEntryByReference retrieves an entry and its items by business reference.
	GetEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries.
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)

	// GetTransactionByBatchID retrieves the cash transaction recorded for a
	// batch's payment posting.
	GetTransactionByBatchID(ctx context.Context, batchID string) (*domain.CashTransaction, error)
}

// PostingSvcFacade combines all ledger posting service interfaces.
type PostingSvcFacade interface {
	LedgerPostingSvc
	JournalReaderSvc
}
