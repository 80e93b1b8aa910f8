package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

// CreateTransfer moves funds between two accounts of the same user:
// -amount on the source, +amount on the destination, zero-sum across the
// pair.
type CreateTransfer struct {
	FromAccountID   uuid.UUID
	ToAccountID     uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time

	// Created is set after a successful Perform.
	Created *transfer.Transfer

	ChangeSet
}

func (a *CreateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount.Sign() <= 0 {
		return validationf("amount must be positive")
	}
	if a.FromAccountID == a.ToAccountID {
		return conflictf("cannot transfer from an account to itself")
	}
	if a.TransactionDate.IsZero() {
		a.TransactionDate = time.Now()
	}

	accounts, err := lockAccounts(ctx, writer, a.FromAccountID, a.ToAccountID)
	if err != nil {
		return err
	}
	from := accounts[a.FromAccountID]
	to := accounts[a.ToAccountID]

	if from.UserID != to.UserID {
		return conflictf("accounts belong to different users")
	}

	fromBalance := from.Balance.Sub(a.Amount)
	if fromBalance.Sign() < 0 {
		return &InsufficientFundsError{AccountID: from.ID}
	}

	id, err := writer.Transfers.Insert(ctx, &transfer.TransferCreate{
		FromAccountID:   a.FromAccountID,
		ToAccountID:     a.ToAccountID,
		Amount:          a.Amount,
		Description:     a.Description,
		TransactionDate: a.TransactionDate,
	})
	if err != nil {
		return err
	}

	if err := writer.Accounts.UpdateBalance(ctx, from.ID, fromBalance); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateBalance(ctx, to.ID, to.Balance.Add(a.Amount)); err != nil {
		return err
	}

	a.Created = &transfer.Transfer{
		ID:              id,
		FromAccountID:   a.FromAccountID,
		ToAccountID:     a.ToAccountID,
		Amount:          a.Amount,
		Description:     a.Description,
		TransactionDate: a.TransactionDate,
	}
	a.Record("transfers", id, audit.ActionCreate, nil, a.Created)
	return nil
}
