package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearledger/payroll_ledger_app/internal/apperrors"
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	portsrepo "github.com/clearledger/payroll_ledger_app/internal/core/ports/repositories"
	"github.com/clearledger/payroll_ledger_app/internal/models"
	"github.com/clearledger/payroll_ledger_app/internal/utils/mapping"
)

type PgxPayrollRecordRepository struct {
	BaseRepository
}

// newPgxPayrollRecordRepository creates a new repository for payroll record data.
func newPgxPayrollRecordRepository(pool *pgxpool.Pool) portsrepo.PayrollRecordRepository {
	return &PgxPayrollRecordRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPayrollRecordRepository implements portsrepo.PayrollRecordRepository
var _ portsrepo.PayrollRecordRepository = (*PgxPayrollRecordRepository)(nil)

const payrollRecordColumns = `
	record_id, employee_id, period, basic_salary, allowances, overtime, bonus,
	deductions, net_salary, status, batch_id, approved_by, approved_at, pay_date,
	created_at, created_by, last_updated_at, last_updated_by
`

// SavePayrollRecord inserts a new payroll record.
func (r *PgxPayrollRecordRepository) SavePayrollRecord(ctx context.Context, record domain.PayrollRecord) error {
	m := mapping.ToModelPayrollRecord(record)
	query := `
		INSERT INTO payroll_records (` + payrollRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.q(ctx).Exec(ctx, query,
		m.RecordID, m.EmployeeID, m.Period, m.BasicSalary, m.Allowances, m.Overtime, m.Bonus,
		m.Deductions, m.NetSalary, m.Status, m.BatchID, m.ApprovedBy, m.ApprovedAt, m.PayDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payroll record "+m.RecordID, err)
	}
	return nil
}

func scanPayrollRecord(row pgx.Row) (*models.PayrollRecord, error) {
	var m models.PayrollRecord
	err := row.Scan(
		&m.RecordID, &m.EmployeeID, &m.Period, &m.BasicSalary, &m.Allowances, &m.Overtime, &m.Bonus,
		&m.Deductions, &m.NetSalary, &m.Status, &m.BatchID, &m.ApprovedBy, &m.ApprovedAt, &m.PayDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindPayrollRecordByID retrieves a payroll record by its ID.
func (r *PgxPayrollRecordRepository) FindPayrollRecordByID(ctx context.Context, recordID string) (*domain.PayrollRecord, error) {
	query := `SELECT ` + payrollRecordColumns + ` FROM payroll_records WHERE record_id = $1;`

	m, err := scanPayrollRecord(r.q(ctx).QueryRow(ctx, query, recordID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payroll record by ID "+recordID, err)
	}

	record := mapping.ToDomainPayrollRecord(*m)
	return &record, nil
}

// FindPayrollRecordsByBatchID retrieves every payroll record assigned to a
// batch, regardless of status.
func (r *PgxPayrollRecordRepository) FindPayrollRecordsByBatchID(ctx context.Context, batchID string) ([]domain.PayrollRecord, error) {
	query := `
		SELECT ` + payrollRecordColumns + `
		FROM payroll_records
		WHERE batch_id = $1
		ORDER BY created_at, record_id;
	`
	rows, err := r.q(ctx).Query(ctx, query, batchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payroll records for batch "+batchID, err)
	}
	defer rows.Close()

	records := []models.PayrollRecord{}
	for rows.Next() {
		m, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll record row for batch "+batchID, err)
		}
		records = append(records, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payroll record rows for batch "+batchID, err)
	}

	return mapping.ToDomainPayrollRecordSlice(records), nil
}

// UpdatePayrollRecord rewrites the mutable fields of a payroll record.
func (r *PgxPayrollRecordRepository) UpdatePayrollRecord(ctx context.Context, record domain.PayrollRecord) error {
	m := mapping.ToModelPayrollRecord(record)
	query := `
		UPDATE payroll_records
		SET basic_salary = $2,
		    allowances = $3,
		    overtime = $4,
		    bonus = $5,
		    deductions = $6,
		    net_salary = $7,
		    status = $8,
		    batch_id = $9,
		    approved_by = $10,
		    approved_at = $11,
		    pay_date = $12,
		    last_updated_at = $13,
		    last_updated_by = $14
		WHERE record_id = $1;
	`
	cmdTag, err := r.q(ctx).Exec(ctx, query,
		m.RecordID, m.BasicSalary, m.Allowances, m.Overtime, m.Bonus, m.Deductions,
		m.NetSalary, m.Status, m.BatchID, m.ApprovedBy, m.ApprovedAt, m.PayDate,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payroll record "+m.RecordID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payroll record " + m.RecordID + " not found for update")
	}
	return nil
}
