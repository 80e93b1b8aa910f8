package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// CreateBudget caps the expense total of a category over an inclusive
// period. Overlapping budgets for the same category are allowed; each is
// enforced independently.
type CreateBudget struct {
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	AmountLimit decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time

	// Created is set after a successful Perform.
	Created *budget.Budget

	ChangeSet
}

func (a *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.AmountLimit.Sign() <= 0 {
		return validationf("amount limit must be positive")
	}
	if a.PeriodEnd.Before(a.PeriodStart) {
		return validationf("period end cannot precede period start")
	}

	cat, err := writer.Categories.FindByID(ctx, a.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return &NotFoundError{Entity: "category"}
	}
	if cat.UserID != a.UserID {
		return conflictf("category belongs to a different user")
	}
	if cat.Type != category.PolarityExpense {
		return validationf("budgets apply to expense categories only")
	}

	id, err := writer.Budgets.Insert(ctx, &budget.BudgetCreate{
		UserID:      a.UserID,
		CategoryID:  a.CategoryID,
		AmountLimit: a.AmountLimit,
		PeriodStart: a.PeriodStart,
		PeriodEnd:   a.PeriodEnd,
	})
	if err != nil {
		return err
	}

	a.Created = &budget.Budget{
		ID:          id,
		UserID:      a.UserID,
		CategoryID:  a.CategoryID,
		AmountLimit: a.AmountLimit,
		PeriodStart: a.PeriodStart,
		PeriodEnd:   a.PeriodEnd,
	}
	a.Record("budgets", id, audit.ActionCreate, nil, a.Created)
	return nil
}
