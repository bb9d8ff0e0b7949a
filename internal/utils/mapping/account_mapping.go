package mapping

import (
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
	"github.com/clearledger/payroll_ledger_app/internal/models"
)

// ToModelPayrollAccountConfig converts a domain config to a model config
func ToModelPayrollAccountConfig(d domain.PayrollAccountConfig) models.PayrollAccountConfig {
	return models.PayrollAccountConfig{
		ConfigID:           d.ConfigID,
		EmployeeID:         d.EmployeeID,
		ExpenseAccountID:   d.ExpenseAccountID,
		PayableAccountID:   d.PayableAccountID,
		DeductionAccountID: d.DeductionAccountID,
		CashAccountID:      d.CashAccountID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollAccountConfig converts a model config to a domain config
func ToDomainPayrollAccountConfig(m models.PayrollAccountConfig) domain.PayrollAccountConfig {
	return domain.PayrollAccountConfig{
		ConfigID:           m.ConfigID,
		EmployeeID:         m.EmployeeID,
		ExpenseAccountID:   m.ExpenseAccountID,
		PayableAccountID:   m.PayableAccountID,
		DeductionAccountID: m.DeductionAccountID,
		CashAccountID:      m.CashAccountID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
