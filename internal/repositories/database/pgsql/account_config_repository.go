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

type PgxAccountConfigRepository struct {
	BaseRepository
}

// newPgxAccountConfigRepository creates a new repository for payroll account configs.
func newPgxAccountConfigRepository(pool *pgxpool.Pool) portsrepo.AccountConfigRepository {
	return &PgxAccountConfigRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountConfigRepository implements portsrepo.AccountConfigRepository
var _ portsrepo.AccountConfigRepository = (*PgxAccountConfigRepository)(nil)

const accountConfigColumns = `
	config_id, employee_id, expense_account_id, payable_account_id,
	deduction_account_id, cash_account_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanAccountConfig(row pgx.Row) (*models.PayrollAccountConfig, error) {
	var m models.PayrollAccountConfig
	err := row.Scan(
		&m.ConfigID, &m.EmployeeID, &m.ExpenseAccountID, &m.PayableAccountID,
		&m.DeductionAccountID, &m.CashAccountID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindConfigByEmployeeID retrieves the payroll account config of an employee.
func (r *PgxAccountConfigRepository) FindConfigByEmployeeID(ctx context.Context, employeeID string) (*domain.PayrollAccountConfig, error) {
	query := `SELECT ` + accountConfigColumns + ` FROM payroll_account_configs WHERE employee_id = $1;`

	m, err := scanAccountConfig(r.q(ctx).QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payroll account config for employee "+employeeID, err)
	}

	config := mapping.ToDomainPayrollAccountConfig(*m)
	return &config, nil
}

// FindConfigsByEmployeeIDs retrieves configs for a set of employees, keyed by
// employee ID. Missing employees are simply absent from the map.
func (r *PgxAccountConfigRepository) FindConfigsByEmployeeIDs(ctx context.Context, employeeIDs []string) (map[string]domain.PayrollAccountConfig, error) {
	configs := make(map[string]domain.PayrollAccountConfig, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return configs, nil
	}

	query := `SELECT ` + accountConfigColumns + ` FROM payroll_account_configs WHERE employee_id = ANY($1);`
	rows, err := r.q(ctx).Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payroll account configs", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanAccountConfig(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payroll account config row", err)
		}
		configs[m.EmployeeID] = mapping.ToDomainPayrollAccountConfig(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payroll account config rows", err)
	}

	return configs, nil
}

// UpsertConfig inserts a config or, if the employee already has one, replaces
// its account assignments in place.
func (r *PgxAccountConfigRepository) UpsertConfig(ctx context.Context, config domain.PayrollAccountConfig) error {
	m := mapping.ToModelPayrollAccountConfig(config)
	query := `
		INSERT INTO payroll_account_configs (` + accountConfigColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id) DO UPDATE
		SET expense_account_id = EXCLUDED.expense_account_id,
		    payable_account_id = EXCLUDED.payable_account_id,
		    deduction_account_id = EXCLUDED.deduction_account_id,
		    cash_account_id = EXCLUDED.cash_account_id,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.q(ctx).Exec(ctx, query,
		m.ConfigID, m.EmployeeID, m.ExpenseAccountID, m.PayableAccountID,
		m.DeductionAccountID, m.CashAccountID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert payroll account config for employee "+m.EmployeeID, err)
	}
	return nil
}
