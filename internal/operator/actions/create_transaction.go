package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// CreateTransaction records a single-entry monetary event and applies its
// signed effect to the account balance.
type CreateTransaction struct {
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time

	// Created is set after a successful Perform.
	Created *transaction.Transaction

	ChangeSet
}

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Amount.Sign() <= 0 {
		return validationf("amount must be positive")
	}
	if a.TransactionDate.IsZero() {
		a.TransactionDate = time.Now()
	}

	accounts, err := lockAccounts(ctx, writer, a.AccountID)
	if err != nil {
		return err
	}
	acct := accounts[a.AccountID]

	cat, err := writer.Categories.FindByID(ctx, a.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return &NotFoundError{Entity: "category"}
	}
	if cat.UserID != acct.UserID {
		return conflictf("account and category belong to different users")
	}

	if cat.Type == category.PolarityExpense {
		if err := checkBudgets(ctx, writer, cat.ID, a.TransactionDate, a.Amount, uuid.Nil); err != nil {
			return err
		}
	}

	newBalance := acct.Balance.Add(signedEffect(cat.Type, a.Amount))
	if newBalance.Sign() < 0 {
		return &InsufficientFundsError{AccountID: acct.ID}
	}

	id, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		AccountID:       a.AccountID,
		CategoryID:      a.CategoryID,
		Amount:          a.Amount,
		Description:     a.Description,
		TransactionDate: a.TransactionDate,
	})
	if err != nil {
		return err
	}

	if err := writer.Accounts.UpdateBalance(ctx, acct.ID, newBalance); err != nil {
		return err
	}

	a.Created = &transaction.Transaction{
		ID:              id,
		AccountID:       a.AccountID,
		CategoryID:      a.CategoryID,
		Amount:          a.Amount,
		Description:     a.Description,
		TransactionDate: a.TransactionDate,
	}
	a.Record("transactions", id, audit.ActionCreate, nil, a.Created)
	return nil
}
