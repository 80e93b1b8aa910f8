package service

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// AccountType represents an account type in the service layer.
type AccountType int8

const (
	AccountTypeCash AccountType = iota
	AccountTypeCreditCards
	AccountTypeInvestments
	AccountTypeLoans
	AccountTypeAssets
)

// Account represents an account in the service layer.
type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Type            AccountType
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

func accountTypeFromStorage(t account.AccountType) AccountType {
	return AccountType(t)
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:              row.ID,
		UserID:          row.UserID,
		Name:            row.Name,
		Type:            accountTypeFromStorage(row.Type),
		Balance:         row.Balance,
		StartingBalance: row.StartingBalance,
	}
}
