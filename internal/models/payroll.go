package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus indicates the lifecycle state of a payroll record row.
type PayrollStatus string

const (
	PayrollPending  PayrollStatus = "PENDING"
	PayrollApproved PayrollStatus = "APPROVED"
	PayrollPaid     PayrollStatus = "PAID"
)

// PayrollRecord mirrors the payroll_records table.
type PayrollRecord struct {
	RecordID    string          `json:"recordID"`
	EmployeeID  string          `json:"employeeID"`
	Period      string          `json:"period"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Overtime    decimal.Decimal `json:"overtime"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"netSalary"`
	Status      PayrollStatus   `json:"status"`
	BatchID     *string         `json:"batchID"`
	ApprovedBy  *string         `json:"approvedBy"`
	ApprovedAt  *time.Time      `json:"approvedAt"`
	PayDate     *time.Time      `json:"payDate"`
	AuditFields
}

// BatchStatus indicates the lifecycle state of a payroll batch row.
type BatchStatus string

const (
	BatchPending  BatchStatus = "PENDING"
	BatchApproved BatchStatus = "APPROVED"
	BatchPosted   BatchStatus = "POSTED"
	BatchPaid     BatchStatus = "PAID"
)

// PayrollBatch mirrors the payroll_batches table.
type PayrollBatch struct {
	BatchID         string          `json:"batchID"`
	Period          string          `json:"period"`
	Status          BatchStatus     `json:"status"`
	TotalGross      decimal.Decimal `json:"totalGross"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalNet        decimal.Decimal `json:"totalNet"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	ApprovedBy      *string         `json:"approvedBy"`
	ApprovedAt      *time.Time      `json:"approvedAt"`
	PostedAt        *time.Time      `json:"postedAt"`
	PaidAt          *time.Time      `json:"paidAt"`
	AuditFields
}
