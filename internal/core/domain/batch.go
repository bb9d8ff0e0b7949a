package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus indicates the lifecycle state of a payroll batch.
type BatchStatus string

const (
	BatchPending  BatchStatus = "PENDING"
	BatchApproved BatchStatus = "APPROVED"
	BatchPosted   BatchStatus = "POSTED"
	BatchPaid     BatchStatus = "PAID"
)

// PaidTolerance is the maximum difference between TotalNet and TotalPaid at
// which a batch is considered fully paid.
var PaidTolerance = decimal.NewFromFloat(0.01)

// PayrollBatch groups the payroll records of one pay period and carries
// derived rollup totals. The totals are recomputed from member records on
// every mutation and are never hand-edited.
type PayrollBatch struct {
	BatchID         string          `json:"batchID"` // Primary Key (UUID)
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

// IsOpen reports whether the batch still accepts new payroll records for its
// period. A PAID batch is closed; a fresh batch starts for that period.
func (b PayrollBatch) IsOpen() bool {
	return b.Status != BatchPaid
}

// IsFullyPaid reports whether TotalPaid matches TotalNet within PaidTolerance
// and there is something to pay at all.
func (b PayrollBatch) IsFullyPaid() bool {
	if !b.TotalNet.IsPositive() {
		return false
	}
	return b.TotalNet.Sub(b.TotalPaid).Abs().LessThanOrEqual(PaidTolerance)
}
