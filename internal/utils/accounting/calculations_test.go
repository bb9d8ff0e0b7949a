package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.01", Round2(decimal.NewFromFloat(10.005)).String())
	assert.Equal(t, "10.00", Round2(decimal.NewFromFloat(10.0049)).String())
	assert.Equal(t, "-10.01", Round2(decimal.NewFromFloat(-10.005)).String())
	assert.Equal(t, "0.1", Round2(decimal.NewFromFloat(0.1)).String())
}

func TestAggregator_FoldsMovementsPerAccount(t *testing.T) {
	agg := NewAggregator()
	agg.Debit("exp-1", decimal.NewFromInt(1000), "Salary expense")
	agg.Debit("exp-1", decimal.NewFromInt(2000), "Salary expense")
	agg.Credit("pay-1", decimal.NewFromInt(900), "Salaries payable")
	agg.Credit("pay-1", decimal.NewFromInt(1800), "Salaries payable")
	agg.Credit("ded-1", decimal.NewFromInt(300), "Payroll deductions")

	lines := agg.Lines()
	assert.Len(t, lines, 3, "same account movements should fold into one line per side")

	assert.Equal(t, "exp-1", lines[0].AccountID)
	assert.True(t, decimal.NewFromInt(3000).Equal(lines[0].Debit))
	assert.True(t, lines[0].Credit.IsZero())

	assert.Equal(t, "pay-1", lines[1].AccountID)
	assert.True(t, decimal.NewFromInt(2700).Equal(lines[1].Credit))

	assert.Equal(t, "ded-1", lines[2].AccountID)
	assert.True(t, decimal.NewFromInt(300).Equal(lines[2].Credit))

	totalDebit, totalCredit := Totals(lines)
	assert.True(t, totalDebit.Equal(totalCredit), "aggregated lines should balance")
}

func TestAggregator_DebitLinesBeforeCreditLines(t *testing.T) {
	agg := NewAggregator()
	agg.Credit("cash-1", decimal.NewFromInt(500), "Disbursement")
	agg.Debit("pay-1", decimal.NewFromInt(500), "Clear payable")

	lines := agg.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, "pay-1", lines[0].AccountID, "debit lines come first regardless of insertion order")
	assert.Equal(t, "cash-1", lines[1].AccountID)
}

func TestAggregator_DropsZeroLines(t *testing.T) {
	agg := NewAggregator()
	agg.Debit("exp-1", decimal.NewFromInt(100), "Expense")
	agg.Credit("pay-1", decimal.NewFromInt(100), "Payable")
	agg.Credit("ded-1", decimal.Zero, "No deductions")

	lines := agg.Lines()
	assert.Len(t, lines, 2, "zero-amount lines should be dropped")
}

func TestAggregator_RoundsAtAggregation(t *testing.T) {
	agg := NewAggregator()
	// Three thirds of a cent each; rounding happens once on the sum,
	// not per movement.
	third := decimal.NewFromFloat(33.333333)
	agg.Debit("exp-1", third, "Expense")
	agg.Debit("exp-1", third, "Expense")
	agg.Debit("exp-1", third, "Expense")

	lines := agg.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, "100.00", lines[0].Debit.StringFixed(2))
}

func TestValidateEntryBalance(t *testing.T) {
	balanced := []domain.JournalEntryItem{
		{AccountID: "a", Debit: decimal.NewFromInt(100)},
		{AccountID: "b", Credit: decimal.NewFromInt(100)},
	}
	assert.NoError(t, ValidateEntryBalance(balanced))

	unbalanced := []domain.JournalEntryItem{
		{AccountID: "a", Debit: decimal.NewFromInt(100)},
		{AccountID: "b", Credit: decimal.NewFromInt(99)},
	}
	assert.Error(t, ValidateEntryBalance(unbalanced))

	negative := []domain.JournalEntryItem{
		{AccountID: "a", Debit: decimal.NewFromInt(-100)},
		{AccountID: "b", Credit: decimal.NewFromInt(-100)},
	}
	assert.Error(t, ValidateEntryBalance(negative))

	assert.NoError(t, ValidateEntryBalance(nil), "an empty item set balances trivially")
}
