package dto

import (
	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
)

// UpsertAccountConfigRequest defines the payload for creating or updating an
// employee's payroll account configuration.
type UpsertAccountConfigRequest struct {
	EmployeeID         string  `json:"employeeID" binding:"required"`
	ExpenseAccountID   string  `json:"expenseAccountID" binding:"required"`
	PayableAccountID   string  `json:"payableAccountID" binding:"required"`
	DeductionAccountID *string `json:"deductionAccountID"`
	CashAccountID      *string `json:"cashAccountID"`
}

// AccountConfigResponse defines the data returned for a payroll account configuration.
type AccountConfigResponse struct {
	ConfigID           string  `json:"configID"`
	EmployeeID         string  `json:"employeeID"`
	ExpenseAccountID   string  `json:"expenseAccountID"`
	PayableAccountID   string  `json:"payableAccountID"`
	DeductionAccountID *string `json:"deductionAccountID,omitempty"`
	CashAccountID      *string `json:"cashAccountID,omitempty"`
}

// ToAccountConfigResponse converts a domain config to its response DTO.
func ToAccountConfigResponse(c *domain.PayrollAccountConfig) AccountConfigResponse {
	return AccountConfigResponse{
		ConfigID:           c.ConfigID,
		EmployeeID:         c.EmployeeID,
		ExpenseAccountID:   c.ExpenseAccountID,
		PayableAccountID:   c.PayableAccountID,
		DeductionAccountID: c.DeductionAccountID,
		CashAccountID:      c.CashAccountID,
	}
}
