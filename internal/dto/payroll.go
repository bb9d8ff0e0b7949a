package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
)

// CreatePayrollRecordRequest defines the payload for creating a payroll record.
// NetSalary is authoritative; the service does not recompute it.
type CreatePayrollRecordRequest struct {
	EmployeeID  string          `json:"employeeID" binding:"required"`
	Period      string          `json:"period" binding:"required"` // e.g. "2024-05"
	BasicSalary decimal.Decimal `json:"basicSalary" binding:"required"`
	Allowances  decimal.Decimal `json:"allowances"`
	Overtime    decimal.Decimal `json:"overtime"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"netSalary" binding:"required"`
}

// UpdatePayrollStatusRequest defines the payload for an administrative status update.
type UpdatePayrollStatusRequest struct {
	Status domain.PayrollStatus `json:"status" binding:"required,oneof=PENDING APPROVED PAID"`
}

// PayrollRecordResponse defines the data returned for a payroll record.
type PayrollRecordResponse struct {
	RecordID    string          `json:"recordID"`
	EmployeeID  string          `json:"employeeID"`
	Period      string          `json:"period"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Overtime    decimal.Decimal `json:"overtime"`
	Bonus       decimal.Decimal `json:"bonus"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetSalary   decimal.Decimal `json:"netSalary"`
	Status      string          `json:"status"`
	BatchID     *string         `json:"batchID,omitempty"`
	ApprovedBy  *string         `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time      `json:"approvedAt,omitempty"`
	PayDate     *time.Time      `json:"payDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// PayrollBatchResponse defines the data returned for a payroll batch.
type PayrollBatchResponse struct {
	BatchID         string          `json:"batchID"`
	Period          string          `json:"period"`
	Status          string          `json:"status"`
	TotalGross      decimal.Decimal `json:"totalGross"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalNet        decimal.Decimal `json:"totalNet"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	ApprovedBy      *string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
}

// BatchRecalculationResponse bundles a recalculated batch with its member records.
type BatchRecalculationResponse struct {
	Batch   PayrollBatchResponse    `json:"batch"`
	Records []PayrollRecordResponse `json:"records"`
}

// ToPayrollRecordResponse converts a domain.PayrollRecord to PayrollRecordResponse DTO.
func ToPayrollRecordResponse(r *domain.PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		RecordID:    r.RecordID,
		EmployeeID:  r.EmployeeID,
		Period:      r.Period,
		BasicSalary: r.BasicSalary,
		Allowances:  r.Allowances,
		Overtime:    r.Overtime,
		Bonus:       r.Bonus,
		Deductions:  r.Deductions,
		NetSalary:   r.NetSalary,
		Status:      string(r.Status),
		BatchID:     r.BatchID,
		ApprovedBy:  r.ApprovedBy,
		ApprovedAt:  r.ApprovedAt,
		PayDate:     r.PayDate,
		CreatedAt:   r.CreatedAt,
		CreatedBy:   r.CreatedBy,
	}
}

// ToPayrollRecordResponses converts a slice of domain records to response DTOs.
func ToPayrollRecordResponses(records []domain.PayrollRecord) []PayrollRecordResponse {
	responses := make([]PayrollRecordResponse, len(records))
	for i, r := range records {
		responses[i] = ToPayrollRecordResponse(&r)
	}
	return responses
}

// ToPayrollBatchResponse converts a domain.PayrollBatch to PayrollBatchResponse DTO.
func ToPayrollBatchResponse(b *domain.PayrollBatch) PayrollBatchResponse {
	return PayrollBatchResponse{
		BatchID:         b.BatchID,
		Period:          b.Period,
		Status:          string(b.Status),
		TotalGross:      b.TotalGross,
		TotalDeductions: b.TotalDeductions,
		TotalNet:        b.TotalNet,
		TotalPaid:       b.TotalPaid,
		ApprovedBy:      b.ApprovedBy,
		ApprovedAt:      b.ApprovedAt,
		PostedAt:        b.PostedAt,
		PaidAt:          b.PaidAt,
	}
}
