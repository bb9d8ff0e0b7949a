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

// payrollService drives payroll records and their batches through the
// PENDING -> APPROVED -> PAID lifecycle, keeps batch rollups freshly derived,
// and invokes the ledger posting engine on each transition. Every public
// mutation runs inside a single database transaction, so a posting failure
// rolls back the record update and batch recalculation with it.
type payrollService struct {
	txm         portsrepo.TxManager
	payrollRepo portsrepo.PayrollRecordRepository
	batchRepo   portsrepo.PayrollBatchRepository
	posting     portssvc.LedgerPostingSvc
}

// NewPayrollService creates a new payroll processor service.
func NewPayrollService(
	txm portsrepo.TxManager,
	payrollRepo portsrepo.PayrollRecordRepository,
	batchRepo portsrepo.PayrollBatchRepository,
	posting portssvc.LedgerPostingSvc,
) portssvc.PayrollSvcFacade {
	return &payrollService{
		txm:         txm,
		payrollRepo: payrollRepo,
		batchRepo:   batchRepo,
		posting:     posting,
	}
}

// Ensure payrollService implements the portssvc.PayrollSvcFacade interface
var _ portssvc.PayrollSvcFacade = (*payrollService)(nil)

// getOrCreateBatch finds the period's open (not yet PAID) batch and reuses
// it; a new PENDING batch is created only when none exists. Records for the
// same period accumulate into one batch until that batch is fully paid.
func (s *payrollService) getOrCreateBatch(ctx context.Context, period string, createdBy string) (*domain.PayrollBatch, error) {
	batch, err := s.batchRepo.FindOpenBatchByPeriod(ctx, period)
	if err == nil {
		return batch, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up open batch for period %s: %w", period, err)
	}

	now := time.Now().UTC()
	newBatch := domain.PayrollBatch{
		BatchID:         uuid.NewString(),
		Period:          period,
		Status:          domain.BatchPending,
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
		TotalPaid:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
	if err := s.batchRepo.SavePayrollBatch(ctx, newBatch); err != nil {
		return nil, fmt.Errorf("failed to create batch for period %s: %w", period, err)
	}
	return &newBatch, nil
}

// recalculateBatch rederives the batch rollup totals from its member records
// and writes them back. The previously stored totals are never trusted.
func (s *payrollService) recalculateBatch(ctx context.Context, batchID string) (*portssvc.BatchRecalculation, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll batch %s: %w", batchID, err)
	}

	records, err := s.payrollRepo.FindPayrollRecordsByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll records for batch %s: %w", batchID, err)
	}

	totalGross := decimal.Zero
	totalDeductions := decimal.Zero
	totalNet := decimal.Zero
	totalPaid := decimal.Zero
	for _, rec := range records {
		totalGross = totalGross.Add(rec.Gross())
		totalDeductions = totalDeductions.Add(rec.Deductions)
		totalNet = totalNet.Add(rec.NetSalary)
		if rec.Status == domain.PayrollPaid {
			totalPaid = totalPaid.Add(rec.NetSalary)
		}
	}

	batch.TotalGross = accounting.Round2(totalGross)
	batch.TotalDeductions = accounting.Round2(totalDeductions)
	batch.TotalNet = accounting.Round2(totalNet)
	batch.TotalPaid = accounting.Round2(totalPaid)
	batch.LastUpdatedAt = time.Now().UTC()

	if err := s.batchRepo.UpdatePayrollBatch(ctx, *batch); err != nil {
		return nil, fmt.Errorf("failed to update batch totals for %s: %w", batchID, err)
	}

	return &portssvc.BatchRecalculation{Batch: *batch, Records: records}, nil
}

// RecalculateBatch rederives a batch's rollup totals inside a transaction.
func (s *payrollService) RecalculateBatch(ctx context.Context, batchID string) (*portssvc.BatchRecalculation, error) {
	var result *portssvc.BatchRecalculation
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.recalculateBatch(ctx, batchID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePayrollRecord creates a payroll record inside its period's open batch
// and recalculates the batch rollups, all in one transaction.
func (s *payrollService) CreatePayrollRecord(ctx context.Context, req dto.CreatePayrollRecordRequest, createdBy string) (*domain.PayrollRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var record domain.PayrollRecord
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		batch, err := s.getOrCreateBatch(ctx, req.Period, createdBy)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		record = domain.PayrollRecord{
			RecordID:    uuid.NewString(),
			EmployeeID:  req.EmployeeID,
			Period:      req.Period,
			BasicSalary: req.BasicSalary,
			Allowances:  req.Allowances,
			Overtime:    req.Overtime,
			Bonus:       req.Bonus,
			Deductions:  req.Deductions,
			NetSalary:   req.NetSalary,
			Status:      domain.PayrollPending,
			BatchID:     &batch.BatchID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createdBy,
				LastUpdatedAt: now,
				LastUpdatedBy: createdBy,
			},
		}
		if err := s.payrollRepo.SavePayrollRecord(ctx, record); err != nil {
			return fmt.Errorf("failed to save payroll record: %w", err)
		}

		_, err = s.recalculateBatch(ctx, batch.BatchID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payroll record created",
		slog.String("record_id", record.RecordID),
		slog.String("employee_id", record.EmployeeID),
		slog.String("period", record.Period),
	)
	return &record, nil
}

// ensureBatchAssignment lazily assigns a batch to a legacy record that lacks
// one, reusing the period's open batch.
func (s *payrollService) ensureBatchAssignment(ctx context.Context, record *domain.PayrollRecord, actorID string) error {
	if record.BatchID != nil {
		return nil
	}
	batch, err := s.getOrCreateBatch(ctx, record.Period, actorID)
	if err != nil {
		return err
	}
	record.BatchID = &batch.BatchID
	return nil
}

// ApprovePayrollRecord marks the record APPROVED and posts the batch accrual,
// stamping approval metadata on the batch as well. The whole transition is
// atomic: a posting failure leaves the record PENDING.
func (s *payrollService) ApprovePayrollRecord(ctx context.Context, recordID string, approverID string) (*domain.PayrollRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var reloaded *domain.PayrollRecord
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.payrollRepo.FindPayrollRecordByID(ctx, recordID)
		if err != nil {
			return fmt.Errorf("failed to find payroll record %s: %w", recordID, err)
		}

		now := time.Now().UTC()
		record.Status = domain.PayrollApproved
		record.ApprovedBy = &approverID
		record.ApprovedAt = &now
		record.LastUpdatedAt = now
		record.LastUpdatedBy = approverID

		if err := s.ensureBatchAssignment(ctx, record, approverID); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdatePayrollRecord(ctx, *record); err != nil {
			return fmt.Errorf("failed to update payroll record %s: %w", recordID, err)
		}

		approval := &portssvc.BatchApprovalStamp{ApprovedBy: approverID, ApprovedAt: now}
		if _, err := s.postBatchAccrual(ctx, *record.BatchID, approverID, approval); err != nil {
			return err
		}

		reloaded, err = s.payrollRepo.FindPayrollRecordByID(ctx, recordID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payroll record approved", slog.String("record_id", recordID), slog.String("approver_id", approverID))
	return reloaded, nil
}

// MarkPayrollRecordPaid marks the record PAID, stamps its pay date and posts
// the batch payment. Atomic like approval.
func (s *payrollService) MarkPayrollRecordPaid(ctx context.Context, recordID string, actorID string) (*domain.PayrollRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var reloaded *domain.PayrollRecord
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.payrollRepo.FindPayrollRecordByID(ctx, recordID)
		if err != nil {
			return fmt.Errorf("failed to find payroll record %s: %w", recordID, err)
		}

		now := time.Now().UTC()
		record.Status = domain.PayrollPaid
		record.PayDate = &now
		record.LastUpdatedAt = now
		record.LastUpdatedBy = actorID

		if err := s.ensureBatchAssignment(ctx, record, actorID); err != nil {
			return err
		}
		if err := s.payrollRepo.UpdatePayrollRecord(ctx, *record); err != nil {
			return fmt.Errorf("failed to update payroll record %s: %w", recordID, err)
		}

		if _, err := s.postBatchPayment(ctx, *record.BatchID, actorID); err != nil {
			return err
		}

		reloaded, err = s.payrollRepo.FindPayrollRecordByID(ctx, recordID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Payroll record paid", slog.String("record_id", recordID), slog.String("actor_id", actorID))
	return reloaded, nil
}

// UpdatePayrollRecordStatus dispatches APPROVED and PAID targets to the full
// transitions. Other targets are administrative field updates with no ledger
// side effects; reverse transitions are rejected because they would leave the
// ledger out of sync without a reversal posting.
func (s *payrollService) UpdatePayrollRecordStatus(ctx context.Context, recordID string, status domain.PayrollStatus, actorID string) (*domain.PayrollRecord, error) {
	record, err := s.payrollRepo.FindPayrollRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll record %s: %w", recordID, err)
	}

	// The guard runs before dispatch so a PAID record cannot regress to
	// APPROVED through the approval flow.
	if !record.Status.IsForwardTransition(status) {
		return nil, fmt.Errorf("%w: reverting payroll record %s from %s to %s requires a reversal posting",
			apperrors.ErrConflict, recordID, record.Status, status)
	}

	switch status {
	case domain.PayrollApproved:
		return s.ApprovePayrollRecord(ctx, recordID, actorID)
	case domain.PayrollPaid:
		return s.MarkPayrollRecordPaid(ctx, recordID, actorID)
	}

	var updated *domain.PayrollRecord
	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.payrollRepo.FindPayrollRecordByID(ctx, recordID)
		if err != nil {
			return fmt.Errorf("failed to find payroll record %s: %w", recordID, err)
		}

		if !record.Status.IsForwardTransition(status) {
			return fmt.Errorf("%w: reverting payroll record %s from %s to %s requires a reversal posting",
				apperrors.ErrConflict, recordID, record.Status, status)
		}

		now := time.Now().UTC()
		record.Status = status
		record.LastUpdatedAt = now
		record.LastUpdatedBy = actorID
		if err := s.payrollRepo.UpdatePayrollRecord(ctx, *record); err != nil {
			return fmt.Errorf("failed to update payroll record %s: %w", recordID, err)
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// postBatchAccrual recalculates the batch, posts the accrual entry, then
// moves the batch to POSTED with the posting timestamp, optionally stamping
// approval metadata supplied by the caller.
func (s *payrollService) postBatchAccrual(ctx context.Context, batchID string, actorID string, approval *portssvc.BatchApprovalStamp) (*portssvc.AccrualPostingResult, error) {
	recalc, err := s.recalculateBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	result, err := s.posting.PostPayrollAccrual(ctx, batchID, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	batch := recalc.Batch
	batch.Status = domain.BatchPosted
	batch.PostedAt = &now
	if approval != nil {
		batch.ApprovedBy = &approval.ApprovedBy
		approvedAt := approval.ApprovedAt
		batch.ApprovedAt = &approvedAt
	}
	batch.LastUpdatedAt = now
	batch.LastUpdatedBy = actorID
	if err := s.batchRepo.UpdatePayrollBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to update batch %s after accrual posting: %w", batchID, err)
	}

	return result, nil
}

// PostBatchAccrual runs the accrual posting for a batch in one transaction.
func (s *payrollService) PostBatchAccrual(ctx context.Context, batchID string, actorID string, approval *portssvc.BatchApprovalStamp) (*portssvc.AccrualPostingResult, error) {
	var result *portssvc.AccrualPostingResult
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.postBatchAccrual(ctx, batchID, actorID, approval)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// postBatchPayment recalculates the batch, posts the payment entry, and
// closes the batch as PAID only when every member record has been paid
// (TotalPaid within tolerance of TotalNet). Partial payment runs leave the
// batch in its current status.
func (s *payrollService) postBatchPayment(ctx context.Context, batchID string, actorID string) (*portssvc.PaymentPostingResult, error) {
	recalc, err := s.recalculateBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	result, err := s.posting.PostPayrollPayment(ctx, batchID, actorID)
	if err != nil {
		return nil, err
	}

	batch := recalc.Batch
	if batch.IsFullyPaid() {
		now := time.Now().UTC()
		batch.Status = domain.BatchPaid
		batch.PaidAt = &now
		batch.LastUpdatedAt = now
		batch.LastUpdatedBy = actorID
		if err := s.batchRepo.UpdatePayrollBatch(ctx, batch); err != nil {
			return nil, fmt.Errorf("failed to close batch %s after payment posting: %w", batchID, err)
		}
	}

	return result, nil
}

// PostBatchPayment runs the payment posting for a batch in one transaction.
func (s *payrollService) PostBatchPayment(ctx context.Context, batchID string, actorID string) (*portssvc.PaymentPostingResult, error) {
	var result *portssvc.PaymentPostingResult
	err := s.txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		result, err = s.postBatchPayment(ctx, batchID, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetPayrollRecordByID retrieves a payroll record.
func (s *payrollService) GetPayrollRecordByID(ctx context.Context, recordID string) (*domain.PayrollRecord, error) {
	record, err := s.payrollRepo.FindPayrollRecordByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll record %s: %w", recordID, err)
	}
	return record, nil
}

// GetBatchByID retrieves a payroll batch.
func (s *payrollService) GetBatchByID(ctx context.Context, batchID string) (*domain.PayrollBatch, error) {
	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll batch %s: %w", batchID, err)
	}
	return batch, nil
}

// GetOpenBatchByPeriod retrieves the period's open batch, if any.
func (s *payrollService) GetOpenBatchByPeriod(ctx context.Context, period string) (*domain.PayrollBatch, error) {
	batch, err := s.batchRepo.FindOpenBatchByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to find open batch for period %s: %w", period, err)
	}
	return batch, nil
}

// ListBatchRecords retrieves every payroll record assigned to a batch.
func (s *payrollService) ListBatchRecords(ctx context.Context, batchID string) ([]domain.PayrollRecord, error) {
	if _, err := s.batchRepo.FindBatchByID(ctx, batchID); err != nil {
		return nil, fmt.Errorf("failed to find payroll batch %s: %w", batchID, err)
	}
	records, err := s.payrollRepo.FindPayrollRecordsByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll records for batch %s: %w", batchID, err)
	}
	return records, nil
}
