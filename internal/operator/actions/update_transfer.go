package actions

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
)

// UpdateTransfer replaces a transfer's endpoints and amount, reversing the
// old movement and applying the new one. Every touched account must end
// non-negative or nothing changes.
type UpdateTransfer struct {
	TransferID      uuid.UUID
	FromAccountID   uuid.UUID
	ToAccountID     uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time

	// Updated is set after a successful Perform.
	Updated *transfer.Transfer

	ChangeSet
}

func (a *UpdateTransfer) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount.Sign() <= 0 {
		return validationf("amount must be positive")
	}
	if a.FromAccountID == a.ToAccountID {
		return conflictf("cannot transfer from an account to itself")
	}

	existing, err := writer.Transfers.FindByID(ctx, a.TransferID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "transfer"}
	}

	if a.TransactionDate.IsZero() {
		a.TransactionDate = time.Now()
	}

	// Lock the union of old and new endpoints up front; the adjustments
	// below may touch up to four distinct accounts.
	accounts, err := lockAccounts(ctx, writer,
		existing.FromAccountID, existing.ToAccountID,
		a.FromAccountID, a.ToAccountID)
	if err != nil {
		return err
	}

	if accounts[a.FromAccountID].UserID != accounts[a.ToAccountID].UserID {
		return conflictf("accounts belong to different users")
	}

	// Net adjustment per account: reverse the old movement, apply the new.
	adjust := map[uuid.UUID]decimal.Decimal{}
	add := func(id uuid.UUID, d decimal.Decimal) {
		adjust[id] = adjust[id].Add(d)
	}
	add(existing.FromAccountID, existing.Amount)
	add(existing.ToAccountID, existing.Amount.Neg())
	add(a.FromAccountID, a.Amount.Neg())
	add(a.ToAccountID, a.Amount)

	for _, id := range orderedAccountIDs(existing.FromAccountID, existing.ToAccountID, a.FromAccountID, a.ToAccountID) {
		final := accounts[id].Balance.Add(adjust[id])
		if final.Sign() < 0 {
			return &InsufficientFundsError{AccountID: id}
		}
		if err := writer.Accounts.UpdateBalance(ctx, id, final); err != nil {
			return err
		}
	}

	setter := &transfer.TransferSetter{
		FromAccountID:   omit.From(a.FromAccountID),
		ToAccountID:     omit.From(a.ToAccountID),
		Amount:          omit.From(a.Amount),
		Description:     omit.From(a.Description),
		TransactionDate: omit.From(a.TransactionDate),
	}
	if err := writer.Transfers.Update(ctx, existing.ID, setter); err != nil {
		return err
	}

	a.Updated = &transfer.Transfer{
		ID:              existing.ID,
		FromAccountID:   a.FromAccountID,
		ToAccountID:     a.ToAccountID,
		Amount:          a.Amount,
		Description:     a.Description,
		TransactionDate: a.TransactionDate,
		CreatedAt:       existing.CreatedAt,
	}
	a.Record("transfers", existing.ID, audit.ActionUpdate, existing, a.Updated)
	return nil
}
