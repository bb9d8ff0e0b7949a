package domain

// PayrollAccountConfig links an employee to the ledger accounts used when their
// payroll is posted. Every employee must have one before any of their payroll
// records can be posted; the posting services treat a missing config as a hard
// validation failure, not a skip.
type PayrollAccountConfig struct {
	ConfigID           string  `json:"configID"`           // Primary Key (UUID)
	EmployeeID         string  `json:"employeeID"`         // One config per employee
	ExpenseAccountID   string  `json:"expenseAccountID"`   // Gross salary expense account
	PayableAccountID   string  `json:"payableAccountID"`   // Net salary liability account
	DeductionAccountID *string `json:"deductionAccountID"` // Optional deductions liability account
	CashAccountID      *string `json:"cashAccountID"`      // Bank/cash account, required for payment posting
	AuditFields
}
