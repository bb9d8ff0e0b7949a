package services

import (
	"context"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	"github.com/clearledger/payroll_ledger_app/internal/dto"
)

// BatchRecalculation bundles a freshly recalculated batch with the member
// records it was derived from, so callers can reuse the list without a second
// query.
type BatchRecalculation struct {
	Batch   domain.PayrollBatch
	Records []domain.PayrollRecord
}

// PayrollReaderSvc defines read operations for payroll data.
type PayrollReaderSvc interface {
	GetPayrollRecordByID(ctx context.Context, recordID string) (*domain.PayrollRecord, error)
	GetBatchByID(ctx context.Context, batchID string) (*domain.PayrollBatch, error)
	GetOpenBatchByPeriod(ctx context.Context, period string) (*domain.PayrollBatch, error)
	ListBatchRecords(ctx context.Context, batchID string) ([]domain.PayrollRecord, error)
}

// PayrollWriterSvc defines the payroll lifecycle operations.
type PayrollWriterSvc interface {
	// CreatePayrollRecord creates a record inside its period's open batch and
	// recalculates the batch rollups, all in one transaction.
	CreatePayrollRecord(ctx context.Context, req dto.CreatePayrollRecordRequest, createdBy string) (*domain.PayrollRecord, error)

	// ApprovePayrollRecord marks the record APPROVED and posts the batch accrual.
	ApprovePayrollRecord(ctx context.Context, recordID string, approverID string) (*domain.PayrollRecord, error)

	// MarkPayrollRecordPaid marks the record PAID and posts the batch payment.
	MarkPayrollRecordPaid(ctx context.Context, recordID string, actorID string) (*domain.PayrollRecord, error)

	// UpdatePayrollRecordStatus dispatches to approve/pay for those targets;
	// other forward transitions are bare field updates. Reverse transitions
	// are rejected, they would desynchronize the ledger from record state.
	UpdatePayrollRecordStatus(ctx context.Context, recordID string, status domain.PayrollStatus, actorID string) (*domain.PayrollRecord, error)
}

// BatchProcessorSvc defines the batch-level aggregation and posting operations.
type BatchProcessorSvc interface {
	// RecalculateBatch rederives the batch rollup totals from its member records.
	RecalculateBatch(ctx context.Context, batchID string) (*BatchRecalculation, error)

	// PostBatchAccrual recalculates the batch, posts the accrual entry and
	// moves the batch to POSTED, optionally stamping approval metadata.
	PostBatchAccrual(ctx context.Context, batchID string, actorID string, approval *BatchApprovalStamp) (*AccrualPostingResult, error)

	// PostBatchPayment recalculates the batch, posts the payment entry and
	// closes the batch as PAID only once it is fully paid.
	PostBatchPayment(ctx context.Context, batchID string, actorID string) (*PaymentPostingResult, error)
}

// PayrollSvcFacade combines all payroll processor interfaces.
type PayrollSvcFacade interface {
	PayrollReaderSvc
	PayrollWriterSvc
	BatchProcessorSvc
}

// AccountConfigSvcFacade defines operations for employee payroll account
// configurations.
type AccountConfigSvcFacade interface {
	UpsertConfig(ctx context.Context, req dto.UpsertAccountConfigRequest, actorID string) (*domain.PayrollAccountConfig, error)
	GetConfigByEmployeeID(ctx context.Context, employeeID string) (*domain.PayrollAccountConfig, error)
}
