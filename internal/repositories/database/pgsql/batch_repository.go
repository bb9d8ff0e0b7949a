package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearledger/payroll_ledger_app/internal/apperrors"
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	portsrepo "github.com/clearledger/payroll_ledger_app/internal/core/ports/repositories"
	"github.com/clearledger/payroll_ledger_app/internal/models"
	"github.com/clearledger/payroll_ledger_app/internal/utils/mapping"
)

type PgxPayrollBatchRepository struct {
	BaseRepository
}

// newPgxPayrollBatchRepository creates a new repository for payroll batch data.
func newPgxPayrollBatchRepository(pool *pgxpool.Pool) portsrepo.PayrollBatchRepository {
	return &PgxPayrollBatchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPayrollBatchRepository implements portsrepo.PayrollBatchRepository
var _ portsrepo.PayrollBatchRepository = (*PgxPayrollBatchRepository)(nil)

const payrollBatchColumns = `
	batch_id, period, status, total_gross, total_deductions, total_net, total_paid,
	approved_by, approved_at, posted_at, paid_at,
	created_at, created_by, last_updated_at, last_updated_by
`

// SavePayrollBatch inserts a new payroll batch. A partial unique index on
// (period) for non-PAID batches enforces a single open batch per period.
func (r *PgxPayrollBatchRepository) SavePayrollBatch(ctx context.Context, batch domain.PayrollBatch) error {
	m := mapping.ToModelPayrollBatch(batch)
	query := `
		INSERT INTO payroll_batches (` + payrollBatchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.q(ctx).Exec(ctx, query,
		m.BatchID, m.Period, m.Status, m.TotalGross, m.TotalDeductions, m.TotalNet, m.TotalPaid,
		m.ApprovedBy, m.ApprovedAt, m.PostedAt, m.PaidAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "an open payroll batch already exists for period "+m.Period, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert payroll batch "+m.BatchID, err)
	}
	return nil
}

func scanPayrollBatch(row pgx.Row) (*models.PayrollBatch, error) {
	var m models.PayrollBatch
	err := row.Scan(
		&m.BatchID, &m.Period, &m.Status, &m.TotalGross, &m.TotalDeductions, &m.TotalNet, &m.TotalPaid,
		&m.ApprovedBy, &m.ApprovedAt, &m.PostedAt, &m.PaidAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindBatchByID retrieves a payroll batch by its ID.
func (r *PgxPayrollBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.PayrollBatch, error) {
	query := `SELECT ` + payrollBatchColumns + ` FROM payroll_batches WHERE batch_id = $1;`

	m, err := scanPayrollBatch(r.q(ctx).QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payroll batch by ID "+batchID, err)
	}

	batch := mapping.ToDomainPayrollBatch(*m)
	return &batch, nil
}

// FindOpenBatchByPeriod retrieves the period's batch that has not reached PAID.
func (r *PgxPayrollBatchRepository) FindOpenBatchByPeriod(ctx context.Context, period string) (*domain.PayrollBatch, error) {
	query := `
		SELECT ` + payrollBatchColumns + `
		FROM payroll_batches
		WHERE period = $1 AND status != 'PAID'
		ORDER BY created_at
		LIMIT 1;
	`
	m, err := scanPayrollBatch(r.q(ctx).QueryRow(ctx, query, period))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open payroll batch for period "+period, err)
	}

	batch := mapping.ToDomainPayrollBatch(*m)
	return &batch, nil
}

// UpdatePayrollBatch rewrites the mutable fields of a payroll batch.
func (r *PgxPayrollBatchRepository) UpdatePayrollBatch(ctx context.Context, batch domain.PayrollBatch) error {
	m := mapping.ToModelPayrollBatch(batch)
	query := `
		UPDATE payroll_batches
		SET status = $2,
		    total_gross = $3,
		    total_deductions = $4,
		    total_net = $5,
		    total_paid = $6,
		    approved_by = $7,
		    approved_at = $8,
		    posted_at = $9,
		    paid_at = $10,
		    last_updated_at = $11,
		    last_updated_by = $12
		WHERE batch_id = $1;
	`
	cmdTag, err := r.q(ctx).Exec(ctx, query,
		m.BatchID, m.Status, m.TotalGross, m.TotalDeductions, m.TotalNet, m.TotalPaid,
		m.ApprovedBy, m.ApprovedAt, m.PostedAt, m.PaidAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payroll batch "+m.BatchID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payroll batch " + m.BatchID + " not found for update")
	}
	return nil
}
