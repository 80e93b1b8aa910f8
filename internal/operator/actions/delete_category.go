package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteCategory removes a category together with its transactions and
// budgets. Account balances are left as they are: the category's history
// disappears but the money it moved stays reflected in the balances.
type DeleteCategory struct {
	CategoryID uuid.UUID

	ChangeSet
}

func (a *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Categories.FindByID(ctx, a.CategoryID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "category"}
	}

	if _, err := writer.Transactions.DeleteByCategory(ctx, a.CategoryID); err != nil {
		return err
	}
	if _, err := writer.Budgets.DeleteByCategory(ctx, a.CategoryID); err != nil {
		return err
	}
	if err := writer.Categories.Delete(ctx, a.CategoryID); err != nil {
		return err
	}

	a.Record("categories", a.CategoryID, audit.ActionDelete, existing, nil)
	return nil
}
