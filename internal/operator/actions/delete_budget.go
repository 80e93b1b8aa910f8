package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteBudget removes a budget. Past transactions are untouched; the cap
// simply stops being enforced.
type DeleteBudget struct {
	BudgetID uuid.UUID

	ChangeSet
}

func (a *DeleteBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Budgets.FindByID(ctx, a.BudgetID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "budget"}
	}

	if err := writer.Budgets.Delete(ctx, a.BudgetID); err != nil {
		return err
	}

	a.Record("budgets", a.BudgetID, audit.ActionDelete, existing, nil)
	return nil
}
