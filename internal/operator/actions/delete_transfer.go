package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteTransfer removes a transfer and reverses its movement: the source
// account gets the amount back, the destination gives it up. A destination
// that cannot cover the reversal refuses the deletion.
type DeleteTransfer struct {
	TransferID uuid.UUID

	ChangeSet
}

func (a *DeleteTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transfers.FindByID(ctx, a.TransferID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "transfer"}
	}

	accounts, err := lockAccounts(ctx, writer, existing.FromAccountID, existing.ToAccountID)
	if err != nil {
		return err
	}
	from := accounts[existing.FromAccountID]
	to := accounts[existing.ToAccountID]

	toBalance := to.Balance.Sub(existing.Amount)
	if toBalance.Sign() < 0 {
		return cannotDeletef("deleting transfer %s would overdraw account %s", existing.ID, to.ID)
	}

	if err := writer.Transfers.Delete(ctx, existing.ID); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateBalance(ctx, from.ID, from.Balance.Add(existing.Amount)); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateBalance(ctx, to.ID, toBalance); err != nil {
		return err
	}

	a.Record("transfers", existing.ID, audit.ActionDelete, existing, nil)
	return nil
}
