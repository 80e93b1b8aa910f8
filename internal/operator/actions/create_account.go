package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccount opens a new account. The starting balance becomes the
// initial current balance and may not be negative.
type CreateAccount struct {
	UserID          uuid.UUID
	Name            string
	Type            account.AccountType
	StartingBalance decimal.Decimal

	// Created is set after a successful Perform.
	Created *account.Account

	ChangeSet
}

func (a *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.Name == "" {
		return validationf("name is required")
	}
	if a.StartingBalance.Sign() < 0 {
		return validationf("starting balance cannot be negative")
	}

	owner, err := writer.Users.FindByID(ctx, a.UserID)
	if err != nil {
		return err
	}
	if owner == nil {
		return &NotFoundError{Entity: "user"}
	}

	id, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		UserID:          a.UserID,
		Name:            a.Name,
		Type:            a.Type,
		StartingBalance: a.StartingBalance,
	})
	if err != nil {
		return err
	}

	a.Created = &account.Account{
		ID:              id,
		UserID:          a.UserID,
		Name:            a.Name,
		Type:            a.Type,
		Balance:         a.StartingBalance,
		StartingBalance: a.StartingBalance,
	}
	a.Record("accounts", id, audit.ActionCreate, nil, a.Created)
	return nil
}
