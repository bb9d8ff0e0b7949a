package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clearledger/payroll_ledger_app/internal/apperrors"
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	portsrepo "github.com/clearledger/payroll_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/clearledger/payroll_ledger_app/internal/core/ports/services"
	"github.com/clearledger/payroll_ledger_app/internal/dto"
	"github.com/clearledger/payroll_ledger_app/internal/middleware"
	"github.com/clearledger/payroll_ledger_app/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced = errors.New("journal entry does not balance")
)

// postingService is the ledger posting engine: it turns a batch's payroll
// records into balanced, per-account-aggregated journal entries, idempotently
// keyed by business reference.
type postingService struct {
	journalRepo       portsrepo.JournalEntryRepository
	payrollRepo       portsrepo.PayrollRecordRepository
	batchRepo         portsrepo.PayrollBatchRepository
	transactionRepo   portsrepo.CashTransactionRepository
	accountConfigRepo portsrepo.AccountConfigRepository
	currencyCode      string
}

// NewPostingService creates a new ledger posting service. currencyCode is the
// ledger's operating currency, recorded on cash transactions.
func NewPostingService(
	journalRepo portsrepo.JournalEntryRepository,
	payrollRepo portsrepo.PayrollRecordRepository,
	batchRepo portsrepo.PayrollBatchRepository,
	transactionRepo portsrepo.CashTransactionRepository,
	accountConfigRepo portsrepo.AccountConfigRepository,
	currencyCode string,
) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo:       journalRepo,
		payrollRepo:       payrollRepo,
		batchRepo:         batchRepo,
		transactionRepo:   transactionRepo,
		accountConfigRepo: accountConfigRepo,
		currencyCode:      currencyCode,
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// loadConfigs fetches the payroll account configuration for every distinct
// employee in records. A missing config is a hard validation failure.
func (s *postingService) loadConfigs(ctx context.Context, records []domain.PayrollRecord) (map[string]domain.PayrollAccountConfig, error) {
	employeeIDs := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.EmployeeID]; ok {
			continue
		}
		seen[rec.EmployeeID] = struct{}{}
		employeeIDs = append(employeeIDs, rec.EmployeeID)
	}

	configs, err := s.accountConfigRepo.FindConfigsByEmployeeIDs(ctx, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payroll account configurations: %w", err)
	}
	for _, id := range employeeIDs {
		if _, ok := configs[id]; !ok {
			return nil, fmt.Errorf("%w: missing payroll account configuration for employee %s", apperrors.ErrValidation, id)
		}
	}
	return configs, nil
}

// PostPayrollAccrual writes the accrual journal entry for a batch: gross pay
// debited to each employee's expense account, net pay credited to the payable
// account and deductions credited to the deduction account (falling back to
// the payable account when none is configured). Movements are aggregated per
// account before lines are written. Re-running the posting for the same batch
// updates the existing entry in place.
func (s *postingService) PostPayrollAccrual(ctx context.Context, batchID string, actorID string) (*portssvc.AccrualPostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll batch %s: %w", batchID, err)
	}

	records, err := s.payrollRepo.FindPayrollRecordsByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll records for batch %s: %w", batchID, err)
	}

	qualifying := make([]domain.PayrollRecord, 0, len(records))
	for _, rec := range records {
		if rec.Status == domain.PayrollApproved || rec.Status == domain.PayrollPaid {
			qualifying = append(qualifying, rec)
		}
	}
	if len(qualifying) == 0 {
		return nil, fmt.Errorf("%w: no approved payroll records to accrue for period %s", apperrors.ErrValidation, batch.Period)
	}

	configs, err := s.loadConfigs(ctx, qualifying)
	if err != nil {
		return nil, err
	}

	agg := accounting.NewAggregator()
	for _, rec := range qualifying {
		config := configs[rec.EmployeeID]
		gross := rec.Gross()
		net := rec.NetSalary
		deductions := rec.Deductions

		agg.Debit(config.ExpenseAccountID, gross, fmt.Sprintf("Salary expense %s", batch.Period))
		agg.Credit(config.PayableAccountID, net, fmt.Sprintf("Salaries payable %s", batch.Period))
		if deductions.IsPositive() {
			deductionAccountID := config.PayableAccountID
			if config.DeductionAccountID != nil {
				deductionAccountID = *config.DeductionAccountID
			}
			agg.Credit(deductionAccountID, deductions, fmt.Sprintf("Payroll deductions %s", batch.Period))
		}
	}

	lines := agg.Lines()
	totalDebit, totalCredit := accounting.Totals(lines)

	reference := domain.PayrollReference(batch.Period, domain.EntryKindAccrual)
	description := fmt.Sprintf("Payroll accrual for period %s", batch.Period)
	entry, err := s.upsertEntry(ctx, batch, reference, description, lines, totalDebit, totalCredit, actorID, nil)
	if err != nil {
		return nil, err
	}

	logger.Info("Payroll accrual posted",
		slog.String("batch_id", batchID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("total_debit", totalDebit.String()),
	)

	return &portssvc.AccrualPostingResult{
		Entry: *entry,
		Totals: portssvc.PostingTotals{
			TotalDebit:  totalDebit,
			TotalCredit: totalCredit,
			RecordCount: len(qualifying),
		},
	}, nil
}

// PostPayrollPayment writes the payment journal entry for a batch's PAID
// records: net pay debited to the payable account (clearing the liability)
// and credited to each employee's cash account. It also upserts the batch's
// single cash transaction and links it to the entry.
func (s *postingService) PostPayrollPayment(ctx context.Context, batchID string, actorID string) (*portssvc.PaymentPostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll batch %s: %w", batchID, err)
	}

	records, err := s.payrollRepo.FindPayrollRecordsByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll records for batch %s: %w", batchID, err)
	}

	qualifying := make([]domain.PayrollRecord, 0, len(records))
	for _, rec := range records {
		if rec.Status == domain.PayrollPaid {
			qualifying = append(qualifying, rec)
		}
	}
	if len(qualifying) == 0 {
		return nil, fmt.Errorf("%w: no paid payroll records to disburse for period %s", apperrors.ErrValidation, batch.Period)
	}

	configs, err := s.loadConfigs(ctx, qualifying)
	if err != nil {
		return nil, err
	}

	agg := accounting.NewAggregator()
	for _, rec := range qualifying {
		config := configs[rec.EmployeeID]
		if config.CashAccountID == nil {
			return nil, fmt.Errorf("%w: missing cash account in payroll account configuration for employee %s", apperrors.ErrValidation, rec.EmployeeID)
		}
		net := rec.NetSalary
		agg.Debit(config.PayableAccountID, net, fmt.Sprintf("Clear salaries payable %s", batch.Period))
		agg.Credit(*config.CashAccountID, net, fmt.Sprintf("Salary disbursement %s", batch.Period))
	}

	lines := agg.Lines()
	totalDebit, totalCredit := accounting.Totals(lines)
	if !totalDebit.IsPositive() {
		return nil, fmt.Errorf("%w: computed payment totals must be positive for period %s", apperrors.ErrValidation, batch.Period)
	}

	txn, err := s.upsertPaymentTransaction(ctx, batch, totalDebit, actorID)
	if err != nil {
		return nil, err
	}

	reference := domain.PayrollReference(batch.Period, domain.EntryKindPayment)
	description := fmt.Sprintf("Payroll payment for period %s", batch.Period)
	entry, err := s.upsertEntry(ctx, batch, reference, description, lines, totalDebit, totalCredit, actorID, &txn.TransactionID)
	if err != nil {
		return nil, err
	}

	logger.Info("Payroll payment posted",
		slog.String("batch_id", batchID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", totalDebit.String()),
	)

	return &portssvc.PaymentPostingResult{
		Entry:       *entry,
		Transaction: *txn,
		Totals: portssvc.PostingTotals{
			TotalDebit:  totalDebit,
			TotalCredit: totalCredit,
			RecordCount: len(qualifying),
		},
	}, nil
}

// upsertEntry writes a journal entry keyed by the batch and its business
// reference: the batch's existing entry is updated in place (its entry
// number preserved and its line items replaced), otherwise a new entry gets
// the next sequential number for the PAY prefix. Scoping the lookup to the
// batch keeps a closed batch's entries intact when a later batch reuses the
// same period reference.
func (s *postingService) upsertEntry(
	ctx context.Context,
	batch *domain.PayrollBatch,
	reference string,
	description string,
	lines []accounting.Line,
	totalDebit, totalCredit decimal.Decimal,
	actorID string,
	transactionID *string,
) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	existing, err := s.journalRepo.FindEntryByBatchAndReference(ctx, batch.BatchID, reference)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up journal entry for batch %s by reference %s: %w", batch.BatchID, reference, err)
	}

	var entry domain.JournalEntry
	if existing != nil {
		entry = *existing
		entry.EntryDate = now
		entry.Description = description
		entry.TotalDebit = totalDebit
		entry.TotalCredit = totalCredit
		entry.PayrollBatchID = &batch.BatchID
		if transactionID != nil {
			entry.TransactionID = transactionID
		}
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actorID
	} else {
		count, err := s.journalRepo.CountEntriesByNumberPrefix(ctx, domain.EntryNumberPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to count journal entries for numbering: %w", err)
		}
		entry = domain.JournalEntry{
			EntryID:        uuid.NewString(),
			EntryNumber:    domain.FormatEntryNumber(domain.EntryNumberPrefix, count+1),
			EntryDate:      now,
			Description:    description,
			Reference:      reference,
			Status:         domain.EntryPosted,
			TotalDebit:     totalDebit,
			TotalCredit:    totalCredit,
			PayrollBatchID: &batch.BatchID,
			TransactionID:  transactionID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}

	items := make([]domain.JournalEntryItem, len(lines))
	for i, line := range lines {
		items[i] = domain.JournalEntryItem{
			ItemID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		}
	}

	// Balance holds by construction (every movement contributes one debit leg
	// and one credit leg); this check guards the invariant against drift.
	if err := accounting.ValidateEntryBalance(items); err != nil {
		logger.Error("Unbalanced journal entry computed", slog.String("reference", reference), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrEntryUnbalanced, err)
	}

	if existing != nil {
		if err := s.journalRepo.UpdateJournalEntry(ctx, entry, items); err != nil {
			return nil, fmt.Errorf("failed to update journal entry %s: %w", entry.EntryID, err)
		}
	} else {
		if err := s.journalRepo.SaveJournalEntry(ctx, entry, items); err != nil {
			return nil, fmt.Errorf("failed to save journal entry %s: %w", entry.EntryID, err)
		}
	}

	entry.Items = items
	return &entry, nil
}

// upsertPaymentTransaction records the cash side of a payment posting. There
// is at most one payment transaction per batch; a re-post reuses its
// reference ID and stamps update metadata instead of inserting a duplicate.
func (s *postingService) upsertPaymentTransaction(ctx context.Context, batch *domain.PayrollBatch, amount decimal.Decimal, actorID string) (*domain.CashTransaction, error) {
	now := time.Now().UTC()

	existing, err := s.transactionRepo.FindTransactionByBatchID(ctx, batch.BatchID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up payment transaction for batch %s: %w", batch.BatchID, err)
	}

	description := fmt.Sprintf("Salary payment for period %s", batch.Period)

	if existing != nil {
		txn := *existing
		txn.Amount = amount
		txn.Description = description
		txn.TransactionDate = now
		txn.Metadata.UpdatedBy = &actorID
		txn.Metadata.UpdatedAt = &now
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = actorID
		if err := s.transactionRepo.UpdateCashTransaction(ctx, txn); err != nil {
			return nil, fmt.Errorf("failed to update payment transaction %s: %w", txn.TransactionID, err)
		}
		return &txn, nil
	}

	txn := domain.CashTransaction{
		TransactionID:   uuid.NewString(),
		ReferenceID:     fmt.Sprintf("PAYROLL-PAY-%d", now.UnixMilli()),
		Type:            domain.TransactionExpense,
		Category:        "PAYROLL",
		Amount:          amount,
		CurrencyCode:    s.currencyCode,
		Description:     description,
		PaymentMethod:   domain.PaymentBankTransfer,
		TransactionDate: now,
		PayrollBatchID:  &batch.BatchID,
		Metadata: domain.TransactionMetadata{
			CreatedBy: actorID,
			CreatedAt: now,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	if err := s.transactionRepo.SaveCashTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save payment transaction %s: %w", txn.TransactionID, err)
	}
	return &txn, nil
}

// GetEntryByReference retrieves a journal entry and its items by business reference.
func (s *postingService) GetEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry by reference %s: %w", reference, err)
	}

	items, err := s.journalRepo.FindItemsByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items for journal entry %s: %w", entry.EntryID, err)
	}
	entry.Items = items
	return entry, nil
}

// GetTransactionByBatchID retrieves the cash transaction recorded for a batch's
// payment posting.
func (s *postingService) GetTransactionByBatchID(ctx context.Context, batchID string) (*domain.CashTransaction, error) {
	txn, err := s.transactionRepo.FindTransactionByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment transaction for batch %s: %w", batchID, err)
	}
	return txn, nil
}

// ListEntries retrieves a paginated list of journal entries.
func (s *postingService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, nextToken, err := s.journalRepo.ListJournalEntries(ctx, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entry)
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   responses,
		NextToken: nextToken,
	}, nil
}
