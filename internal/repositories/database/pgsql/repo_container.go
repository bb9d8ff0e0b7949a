package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/clearledger/payroll_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto one shared pool so
// the container can hand them to the service layer in a single struct.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:         NewTxManager(pool),
		PayrollRepo:       newPgxPayrollRecordRepository(pool),
		BatchRepo:         newPgxPayrollBatchRepository(pool),
		JournalRepo:       newPgxJournalEntryRepository(pool),
		TransactionRepo:   newPgxCashTransactionRepository(pool),
		AccountConfigRepo: newPgxAccountConfigRepository(pool),
	}
}
