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

type PgxCashTransactionRepository struct {
	BaseRepository
}

// newPgxCashTransactionRepository creates a new repository for cash transaction data.
func newPgxCashTransactionRepository(pool *pgxpool.Pool) portsrepo.CashTransactionRepository {
	return &PgxCashTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCashTransactionRepository implements portsrepo.CashTransactionRepository
var _ portsrepo.CashTransactionRepository = (*PgxCashTransactionRepository)(nil)

const cashTransactionColumns = `
	transaction_id, reference_id, type, category, amount, currency_code,
	description, payment_method, transaction_date, payroll_batch_id, metadata,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveCashTransaction inserts a new cash transaction.
func (r *PgxCashTransactionRepository) SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error {
	m, err := mapping.ToModelCashTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal metadata for transaction "+txn.TransactionID, err)
	}
	query := `
		INSERT INTO cash_transactions (` + cashTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = r.q(ctx).Exec(ctx, query,
		m.TransactionID, m.ReferenceID, m.Type, m.Category, m.Amount, m.CurrencyCode,
		m.Description, m.PaymentMethod, m.TransactionDate, m.PayrollBatchID, m.Metadata,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert cash transaction "+m.TransactionID, err)
	}
	return nil
}

func scanCashTransaction(row pgx.Row) (*models.CashTransaction, error) {
	var m models.CashTransaction
	err := row.Scan(
		&m.TransactionID, &m.ReferenceID, &m.Type, &m.Category, &m.Amount, &m.CurrencyCode,
		&m.Description, &m.PaymentMethod, &m.TransactionDate, &m.PayrollBatchID, &m.Metadata,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindTransactionByBatchID retrieves the payment transaction recorded for a
// payroll batch.
func (r *PgxCashTransactionRepository) FindTransactionByBatchID(ctx context.Context, batchID string) (*domain.CashTransaction, error) {
	query := `SELECT ` + cashTransactionColumns + ` FROM cash_transactions WHERE payroll_batch_id = $1;`

	m, err := scanCashTransaction(r.q(ctx).QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash transaction for batch "+batchID, err)
	}

	txn, err := mapping.ToDomainCashTransaction(*m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to unmarshal metadata for transaction "+m.TransactionID, err)
	}
	return &txn, nil
}

// UpdateCashTransaction rewrites the mutable fields of a cash transaction.
func (r *PgxCashTransactionRepository) UpdateCashTransaction(ctx context.Context, txn domain.CashTransaction) error {
	m, err := mapping.ToModelCashTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal metadata for transaction "+txn.TransactionID, err)
	}
	query := `
		UPDATE cash_transactions
		SET amount = $2,
		    currency_code = $3,
		    description = $4,
		    payment_method = $5,
		    transaction_date = $6,
		    metadata = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.q(ctx).Exec(ctx, query,
		m.TransactionID, m.Amount, m.CurrencyCode, m.Description, m.PaymentMethod,
		m.TransactionDate, m.Metadata, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cash transaction "+m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("cash transaction " + m.TransactionID + " not found for update")
	}
	return nil
}
