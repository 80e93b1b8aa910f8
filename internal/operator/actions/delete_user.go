package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteUser removes a user and everything they own: each account through
// the account cascade, then categories with their transactions and
// budgets, then the user row. Any refused account cascade refuses the
// whole deletion.
type DeleteUser struct {
	UserID uuid.UUID

	ChangeSet
}

func (a *DeleteUser) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Users.FindByID(ctx, a.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "user"}
	}

	accounts, err := writer.Accounts.ListByUser(ctx, a.UserID)
	if err != nil {
		return err
	}
	for _, acct := range accounts {
		if err := deleteAccountCascade(ctx, writer, acct.ID, &a.ChangeSet); err != nil {
			return err
		}
	}

	categories, err := writer.Categories.ListByUser(ctx, a.UserID)
	if err != nil {
		return err
	}
	for _, cat := range categories {
		if _, err := writer.Transactions.DeleteByCategory(ctx, cat.ID); err != nil {
			return err
		}
		if err := writer.Categories.Delete(ctx, cat.ID); err != nil {
			return err
		}
		a.Record("categories", cat.ID, audit.ActionDelete, cat, nil)
	}

	if _, err := writer.Budgets.DeleteByUser(ctx, a.UserID); err != nil {
		return err
	}
	if err := writer.Users.Delete(ctx, a.UserID); err != nil {
		return err
	}

	a.Record("users", a.UserID, audit.ActionDelete, existing, nil)
	return nil
}
