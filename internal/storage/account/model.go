package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents an account record. Balance is a derived cache of the
// signed effects of every transaction and transfer touching the account;
// StartingBalance is the anchor that sum is measured against.
type Account struct {
	ID              uuid.UUID       `db:"account_id"`
	UserID          uuid.UUID       `db:"user_id"`
	Name            string          `db:"name"`
	Type            AccountType     `db:"type"`
	Balance         decimal.Decimal `db:"balance"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	CreatedAt       time.Time       `db:"created_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID          uuid.UUID
	Name            string
	Type            AccountType
	StartingBalance decimal.Decimal
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	UserID *uuid.UUID
	Limit  int
	Offset int
}

// IAccountReader defines read-only account storage operations.
type IAccountReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Account, error)
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type IAccountTable interface {
	IAccountReader
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AccountType int8

const (
	AccountTypeCash AccountType = iota
	AccountTypeCreditCards
	AccountTypeInvestments
	AccountTypeLoans
	AccountTypeAssets
)
