package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/clearledger/payroll_ledger_app/internal/core/domain"
)

// Round2 normalizes a monetary amount to two decimal places (half-up).
// All amounts are rounded at aggregation time, before storage and before
// equality comparisons.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Line is one aggregated journal line for an account: the summed debit or
// credit of every movement that hit that account on that side.
type Line struct {
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// Aggregator collects semantic money movements and folds them per account,
// so two payroll records hitting the same expense account produce one summed
// line rather than two. Line order is deterministic: accounts in first-seen
// order, debit lines before credit lines.
type Aggregator struct {
	debits  map[string]decimal.Decimal
	credits map[string]decimal.Decimal
	descs   map[string]string
	order   []string
}

// NewAggregator creates an empty movement aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		debits:  make(map[string]decimal.Decimal),
		credits: make(map[string]decimal.Decimal),
		descs:   make(map[string]string),
	}
}

func (a *Aggregator) touch(accountID, description string) {
	_, seenDebit := a.debits[accountID]
	_, seenCredit := a.credits[accountID]
	if !seenDebit && !seenCredit {
		a.order = append(a.order, accountID)
	}
	if _, ok := a.descs[accountID]; !ok {
		a.descs[accountID] = description
	}
}

// Debit adds a debit movement against an account.
func (a *Aggregator) Debit(accountID string, amount decimal.Decimal, description string) {
	a.touch(accountID, description)
	a.debits[accountID] = a.debits[accountID].Add(amount)
}

// Credit adds a credit movement against an account.
func (a *Aggregator) Credit(accountID string, amount decimal.Decimal, description string) {
	a.touch(accountID, description)
	a.credits[accountID] = a.credits[accountID].Add(amount)
}

// Lines returns the aggregated journal lines, one per account per side,
// rounded to two decimals. Zero-amount lines are dropped.
func (a *Aggregator) Lines() []Line {
	lines := make([]Line, 0, len(a.order))
	for _, accountID := range a.order {
		if debit, ok := a.debits[accountID]; ok {
			debit = Round2(debit)
			if !debit.IsZero() {
				lines = append(lines, Line{AccountID: accountID, Debit: debit, Description: a.descs[accountID]})
			}
		}
	}
	for _, accountID := range a.order {
		if credit, ok := a.credits[accountID]; ok {
			credit = Round2(credit)
			if !credit.IsZero() {
				lines = append(lines, Line{AccountID: accountID, Credit: credit, Description: a.descs[accountID]})
			}
		}
	}
	return lines
}

// Totals sums the aggregated, rounded debit and credit lines.
func Totals(lines []Line) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateEntryBalance checks that the items of a journal entry balance:
// the sum of debits equals the sum of credits and every amount is non-negative.
func ValidateEntryBalance(items []domain.JournalEntryItem) error {
	debitsSum := decimal.Zero
	creditsSum := decimal.Zero

	for _, item := range items {
		if item.Debit.IsNegative() || item.Credit.IsNegative() {
			return fmt.Errorf("journal line amounts must not be negative for account %s", item.AccountID)
		}
		debitsSum = debitsSum.Add(item.Debit)
		creditsSum = creditsSum.Add(item.Credit)
	}

	if !debitsSum.Equal(creditsSum) {
		return fmt.Errorf("journal entry does not balance: debits sum is %s and credits sum is %s",
			debitsSum.String(), creditsSum.String())
	}
	return nil
}
