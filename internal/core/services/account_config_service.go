package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clearledger/payroll_ledger_app/internal/apperrors"
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	portsrepo "github.com/clearledger/payroll_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/clearledger/payroll_ledger_app/internal/core/ports/services"
	"github.com/clearledger/payroll_ledger_app/internal/dto"
	"github.com/clearledger/payroll_ledger_app/internal/middleware"
)

// accountConfigService manages employee payroll account configurations. The
// referenced ledger accounts themselves belong to the chart of accounts,
// which this module never mutates.
type accountConfigService struct {
	accountConfigRepo portsrepo.AccountConfigRepository
}

// NewAccountConfigService creates a new account configuration service.
func NewAccountConfigService(accountConfigRepo portsrepo.AccountConfigRepository) portssvc.AccountConfigSvcFacade {
	return &accountConfigService{accountConfigRepo: accountConfigRepo}
}

// Ensure accountConfigService implements the portssvc.AccountConfigSvcFacade interface
var _ portssvc.AccountConfigSvcFacade = (*accountConfigService)(nil)

// UpsertConfig creates or updates the payroll account configuration for an
// employee, keyed by employee ID.
func (s *accountConfigService) UpsertConfig(ctx context.Context, req dto.UpsertAccountConfigRequest, actorID string) (*domain.PayrollAccountConfig, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()

	existing, err := s.accountConfigRepo.FindConfigByEmployeeID(ctx, req.EmployeeID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up payroll account configuration for employee %s: %w", req.EmployeeID, err)
	}

	var config domain.PayrollAccountConfig
	if existing != nil {
		config = *existing
		config.ExpenseAccountID = req.ExpenseAccountID
		config.PayableAccountID = req.PayableAccountID
		config.DeductionAccountID = req.DeductionAccountID
		config.CashAccountID = req.CashAccountID
		config.LastUpdatedAt = now
		config.LastUpdatedBy = actorID
	} else {
		config = domain.PayrollAccountConfig{
			ConfigID:           uuid.NewString(),
			EmployeeID:         req.EmployeeID,
			ExpenseAccountID:   req.ExpenseAccountID,
			PayableAccountID:   req.PayableAccountID,
			DeductionAccountID: req.DeductionAccountID,
			CashAccountID:      req.CashAccountID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}

	if err := s.accountConfigRepo.UpsertConfig(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to upsert payroll account configuration for employee %s: %w", req.EmployeeID, err)
	}

	logger.Info("Payroll account configuration upserted",
		slog.String("employee_id", req.EmployeeID),
		slog.String("config_id", config.ConfigID),
	)
	return &config, nil
}

// GetConfigByEmployeeID retrieves an employee's payroll account configuration.
func (s *accountConfigService) GetConfigByEmployeeID(ctx context.Context, employeeID string) (*domain.PayrollAccountConfig, error) {
	config, err := s.accountConfigRepo.FindConfigByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payroll account configuration for employee %s: %w", employeeID, err)
	}
	return config, nil
}
