package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearledger/payroll_ledger_app/internal/apperrors"
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	portsrepo "github.com/clearledger/payroll_ledger_app/internal/core/ports/repositories"
	"github.com/clearledger/payroll_ledger_app/internal/models"
	"github.com/clearledger/payroll_ledger_app/internal/utils/mapping"
	"github.com/clearledger/payroll_ledger_app/internal/utils/pagination"
)

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entry data.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepository {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepository
var _ portsrepo.JournalEntryRepository = (*PgxJournalEntryRepository)(nil)

const journalEntryColumns = `
	entry_id, entry_number, entry_date, description, reference, status,
	total_debit, total_credit, payroll_batch_id, transaction_id,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveJournalEntry inserts an entry header together with its line items.
// A unique constraint on (payroll_batch_id, reference) guards against
// double-posting the same payroll side of a batch even across concurrent
// callers.
func (r *PgxJournalEntryRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.q(ctx).Exec(ctx, query,
		m.EntryID, m.EntryNumber, m.EntryDate, m.Description, m.Reference, m.Status,
		m.TotalDebit, m.TotalCredit, m.PayrollBatchID, m.TransactionID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "a journal entry already exists for this batch and reference "+m.Reference, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}

	return r.insertItems(ctx, m.EntryID, items)
}

func (r *PgxJournalEntryRepository) insertItems(ctx context.Context, entryID string, items []domain.JournalEntryItem) error {
	query := `
		INSERT INTO journal_entry_items (item_id, entry_id, account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range items {
		im := mapping.ToModelJournalEntryItem(item)
		_, err := r.q(ctx).Exec(ctx, query,
			im.ItemID, im.EntryID, im.AccountID, im.Debit, im.Credit, im.Description,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert journal entry item for entry "+entryID, err)
		}
	}
	return nil
}

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.EntryNumber, &m.EntryDate, &m.Description, &m.Reference, &m.Status,
		&m.TotalDebit, &m.TotalCredit, &m.PayrollBatchID, &m.TransactionID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByReference retrieves the most recently created journal entry for
// a reference. References repeat across batches of the same period.
func (r *PgxJournalEntryRepository) FindEntryByReference(ctx context.Context, reference string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE reference = $1 ORDER BY created_at DESC LIMIT 1;`

	m, err := scanJournalEntry(r.q(ctx).QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by reference "+reference, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindEntryByBatchAndReference retrieves the batch's journal entry for an
// idempotency reference.
func (r *PgxJournalEntryRepository) FindEntryByBatchAndReference(ctx context.Context, batchID string, reference string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE payroll_batch_id = $1 AND reference = $2;`

	m, err := scanJournalEntry(r.q(ctx).QueryRow(ctx, query, batchID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry for batch "+batchID+" by reference "+reference, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanJournalEntry(r.q(ctx).QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindItemsByEntryID retrieves the line items of a journal entry in insertion order.
func (r *PgxJournalEntryRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error) {
	query := `
		SELECT item_id, entry_id, account_id, debit, credit, description
		FROM journal_entry_items
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.q(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry items for entry "+entryID, err)
	}
	defer rows.Close()

	items := []models.JournalEntryItem{}
	for rows.Next() {
		var m models.JournalEntryItem
		if err := rows.Scan(&m.ItemID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &m.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry item row for entry "+entryID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry item rows for entry "+entryID, err)
	}

	return mapping.ToDomainJournalEntryItemSlice(items), nil
}

// UpdateJournalEntry rewrites the entry header and replaces its line items.
// Item replacement happens in one delete-then-insert pass so re-posting a
// payroll side never leaves stale lines behind.
func (r *PgxJournalEntryRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2,
		    description = $3,
		    status = $4,
		    total_debit = $5,
		    total_credit = $6,
		    payroll_batch_id = $7,
		    transaction_id = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE entry_id = $1;
	`
	cmdTag, err := r.q(ctx).Exec(ctx, query,
		m.EntryID, m.EntryDate, m.Description, m.Status,
		m.TotalDebit, m.TotalCredit, m.PayrollBatchID, m.TransactionID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + m.EntryID + " not found for update")
	}

	if _, err := r.q(ctx).Exec(ctx, `DELETE FROM journal_entry_items WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear journal entry items for entry "+m.EntryID, err)
	}
	return r.insertItems(ctx, m.EntryID, items)
}

// CountEntriesByNumberPrefix counts entries whose entry number starts with prefix.
func (r *PgxJournalEntryRepository) CountEntriesByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	query := `SELECT COUNT(*) FROM journal_entries WHERE entry_number LIKE $1;`

	var count int64
	if err := r.q(ctx).QueryRow(ctx, query, prefix+"-%").Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journal entries with number prefix "+prefix, err)
	}
	return count, nil
}

// ListJournalEntries returns a page of entries ordered by entry date then
// creation time, newest first, with a cursor token for the next page.
func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []any{limit + 1}
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries`

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` WHERE (entry_date, created_at) < ($2, $3)`
		args = append(args, entryDate, createdAt)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC LIMIT $1;`

	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}

	return mapping.ToDomainJournalEntrySlice(entries), token, nil
}
