package actions

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// UpdateTransaction replaces a transaction's fields, reversing the old
// monetary effect and applying the new one in a single unit of work.
type UpdateTransaction struct {
	TransactionID   uuid.UUID
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time

	// Updated is set after a successful Perform.
	Updated *transaction.Transaction

	ChangeSet
}

func (a *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount.Sign() <= 0 {
		return validationf("amount must be positive")
	}

	existing, err := writer.Transactions.FindByID(ctx, a.TransactionID)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{Entity: "transaction"}
	}

	if a.TransactionDate.IsZero() {
		a.TransactionDate = time.Now()
	}

	accounts, err := lockAccounts(ctx, writer, existing.AccountID, a.AccountID)
	if err != nil {
		return err
	}
	oldAcct := accounts[existing.AccountID]
	newAcct := accounts[a.AccountID]

	oldCat, err := writer.Categories.FindByID(ctx, existing.CategoryID)
	if err != nil {
		return err
	}
	if oldCat == nil {
		return &NotFoundError{Entity: "category"}
	}
	newCat := oldCat
	if a.CategoryID != existing.CategoryID {
		newCat, err = writer.Categories.FindByID(ctx, a.CategoryID)
		if err != nil {
			return err
		}
		if newCat == nil {
			return &NotFoundError{Entity: "category"}
		}
	}
	if newCat.UserID != newAcct.UserID {
		return conflictf("account and category belong to different users")
	}

	oldDelta := signedEffect(oldCat.Type, existing.Amount)
	newDelta := signedEffect(newCat.Type, a.Amount)

	if newCat.Type == category.PolarityExpense {
		// The transaction's own old amount must not count against the
		// budgets it is moving within.
		if err := checkBudgets(ctx, writer, newCat.ID, a.TransactionDate, a.Amount, existing.ID); err != nil {
			return err
		}
	}

	if oldAcct.ID == newAcct.ID {
		// One combined check, so an edit that both removes and re-adds
		// funds on the same account is not spuriously rejected.
		final := oldAcct.Balance.Sub(oldDelta).Add(newDelta)
		if final.Sign() < 0 {
			return &InsufficientFundsError{AccountID: oldAcct.ID}
		}
		if err := writer.Accounts.UpdateBalance(ctx, oldAcct.ID, final); err != nil {
			return err
		}
	} else {
		oldFinal := oldAcct.Balance.Sub(oldDelta)
		if oldFinal.Sign() < 0 {
			return &InsufficientFundsError{AccountID: oldAcct.ID}
		}
		newFinal := newAcct.Balance.Add(newDelta)
		if newFinal.Sign() < 0 {
			return &InsufficientFundsError{AccountID: newAcct.ID}
		}
		if err := writer.Accounts.UpdateBalance(ctx, oldAcct.ID, oldFinal); err != nil {
			return err
		}
		if err := writer.Accounts.UpdateBalance(ctx, newAcct.ID, newFinal); err != nil {
			return err
		}
	}

	setter := &transaction.TransactionSetter{
		AccountID:       omit.From(a.AccountID),
		CategoryID:      omit.From(a.CategoryID),
		Amount:          omit.From(a.Amount),
		Description:     omit.From(a.Description),
		TransactionDate: omit.From(a.TransactionDate),
	}
	if err := writer.Transactions.Update(ctx, existing.ID, setter); err != nil {
		return err
	}

	a.Updated = &transaction.Transaction{
		ID:              existing.ID,
		AccountID:       a.AccountID,
		CategoryID:      a.CategoryID,
		Amount:          a.Amount,
		Description:     a.Description,
		TransactionDate: a.TransactionDate,
		CreatedAt:       existing.CreatedAt,
	}
	a.Record("transactions", existing.ID, audit.ActionUpdate, existing, a.Updated)
	return nil
}
