package models

// PayrollAccountConfig mirrors the payroll_account_configs table.
type PayrollAccountConfig struct {
	ConfigID           string  `json:"configID"`
	EmployeeID         string  `json:"employeeID"`
	ExpenseAccountID   string  `json:"expenseAccountID"`
	PayableAccountID   string  `json:"payableAccountID"`
	DeductionAccountID *string `json:"deductionAccountID"`
	CashAccountID      *string `json:"cashAccountID"`
	AuditFields
}
