package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteTransaction removes a transaction and reverses its effect on the
// account balance. A reversal that would drive the balance negative
// refuses the deletion.
type DeleteTransaction struct {
	TransactionID uuid.UUID

	ChangeSet
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, a.TransactionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "transaction"}
	}

	accounts, err := lockAccounts(ctx, writer, existing.AccountID)
	if err != nil {
		return err
	}
	acct := accounts[existing.AccountID]

	cat, err := writer.Categories.FindByID(ctx, existing.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return &NotFoundError{Entity: "category"}
	}

	newBalance := acct.Balance.Sub(signedEffect(cat.Type, existing.Amount))
	if newBalance.Sign() < 0 {
		return cannotDeletef("deleting transaction %s would overdraw account %s", existing.ID, acct.ID)
	}

	if err := writer.Transactions.Delete(ctx, existing.ID); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateBalance(ctx, acct.ID, newBalance); err != nil {
		return err
	}

	a.Record("transactions", existing.ID, audit.ActionDelete, existing, nil)
	return nil
}
