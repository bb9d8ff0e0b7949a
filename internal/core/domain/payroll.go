package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus indicates the lifecycle state of a payroll record.
type PayrollStatus string

const (
	PayrollPending  PayrollStatus = "PENDING"
	PayrollApproved PayrollStatus = "APPROVED"
	PayrollPaid     PayrollStatus = "PAID"
)

// PayrollRecord represents one employee's pay for one period.
// NetSalary is authoritative input; it is never recomputed from the components.
type PayrollRecord struct {
	RecordID    string          `json:"recordID"` // Primary Key (UUID)
	EmployeeID  string          `json:"employeeID"`
	Period      string          `json:"period"` // Pay period key, e.g. "2024-05"
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Overtime    decimal.Decimal `json:"overtime"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"netSalary"`
	Status      PayrollStatus   `json:"status"`
	BatchID     *string         `json:"batchID"` // Assigned lazily if absent
	ApprovedBy  *string         `json:"approvedBy"`
	ApprovedAt  *time.Time      `json:"approvedAt"`
	PayDate     *time.Time      `json:"payDate"`
	AuditFields
}

// Gross returns the gross pay: basic + allowances + overtime + bonus.
func (r PayrollRecord) Gross() decimal.Decimal {
	return r.BasicSalary.Add(r.Allowances).Add(r.Overtime).Add(r.Bonus)
}

// rank orders payroll statuses along the forward lifecycle.
func (s PayrollStatus) rank() int {
	switch s {
	case PayrollPending:
		return 0
	case PayrollApproved:
		return 1
	case PayrollPaid:
		return 2
	}
	return -1
}

// IsForwardTransition reports whether moving from s to target follows the
// PENDING -> APPROVED -> PAID direction. Reverse transitions require a
// compensating ledger posting and are rejected by the lifecycle service.
func (s PayrollStatus) IsForwardTransition(target PayrollStatus) bool {
	return target.rank() >= s.rank()
}
