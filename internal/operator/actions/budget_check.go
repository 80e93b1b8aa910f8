package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// checkBudgets verifies that adding amount to the category's expense total
// keeps every budget whose inclusive period contains date within its
// limit. Overlapping budgets are checked independently; the first
// violation aborts. excludeID omits the transaction being updated from the
// existing-spend sum, uuid.Nil excludes nothing.
func checkBudgets(ctx context.Context, writer *storage.Writer, categoryID uuid.UUID, date time.Time, amount decimal.Decimal, excludeID uuid.UUID) error {
	budgets, err := writer.Budgets.ListContaining(ctx, categoryID, date)
	if err != nil {
		return err
	}

	for _, b := range budgets {
		spent, err := writer.Transactions.SumExpensesInPeriod(ctx, categoryID, b.PeriodStart, b.PeriodEnd, excludeID)
		if err != nil {
			return err
		}
		if spent.Add(amount).GreaterThan(b.AmountLimit) {
			return &BudgetExceededError{PeriodStart: b.PeriodStart, PeriodEnd: b.PeriodEnd}
		}
	}
	return nil
}
