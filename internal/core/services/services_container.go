package services

import (
	portsrepo "github.com/clearledger/payroll_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/clearledger/payroll_ledger_app/internal/core/ports/services"
	"github.com/clearledger/payroll_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Posting engine first since the payroll processor depends on it
	container.Posting = NewPostingService(
		repos.JournalRepo,
		repos.PayrollRepo,
		repos.BatchRepo,
		repos.TransactionRepo,
		repos.AccountConfigRepo,
		cfg.CurrencyCode,
	)

	container.Payroll = NewPayrollService(
		repos.TxManager,
		repos.PayrollRepo,
		repos.BatchRepo,
		container.Posting,
	)

	container.AccountConfig = NewAccountConfigService(repos.AccountConfigRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PostingSvcFacade       = (*postingService)(nil)
	_ portssvc.PayrollSvcFacade       = (*payrollService)(nil)
	_ portssvc.AccountConfigSvcFacade = (*accountConfigService)(nil)
)
