package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
)

func TestPayrollRecord_Gross(t *testing.T) {
	record := domain.PayrollRecord{
		BasicSalary: decimal.NewFromInt(3000),
		Allowances:  decimal.NewFromInt(500),
		Overtime:    decimal.NewFromInt(200),
		Bonus:       decimal.NewFromInt(1500),
	}
	assert.True(t, decimal.NewFromInt(5200).Equal(record.Gross()), "gross should sum all pay components")

	empty := domain.PayrollRecord{}
	assert.True(t, empty.Gross().IsZero(), "gross of an empty record should be zero")
}

func TestPayrollStatus_IsForwardTransition(t *testing.T) {
	tests := []struct {
		name   string
		from   domain.PayrollStatus
		to     domain.PayrollStatus
		want   bool
	}{
		{name: "pending to approved", from: domain.PayrollPending, to: domain.PayrollApproved, want: true},
		{name: "pending to paid", from: domain.PayrollPending, to: domain.PayrollPaid, want: true},
		{name: "approved to paid", from: domain.PayrollApproved, to: domain.PayrollPaid, want: true},
		{name: "same status", from: domain.PayrollApproved, to: domain.PayrollApproved, want: true},
		{name: "approved back to pending", from: domain.PayrollApproved, to: domain.PayrollPending, want: false},
		{name: "paid back to approved", from: domain.PayrollPaid, to: domain.PayrollApproved, want: false},
		{name: "paid back to pending", from: domain.PayrollPaid, to: domain.PayrollPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.IsForwardTransition(tt.to))
		})
	}
}
