package account

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID              string `json:"id" doc:"Account UUID"`
	UserID          string `json:"userID" doc:"Owning user UUID"`
	Name            string `json:"name" doc:"Account name"`
	Type            int    `json:"type" doc:"Account type: 0=Cash, 1=Credit Cards, 2=Investments, 3=Loans, 4=Assets"`
	Balance         string `json:"balance" doc:"Current decimal balance"`
	StartingBalance string `json:"startingBalance" doc:"Decimal balance the account opened with"`
}

func accountFromService(a service.Account) Account {
	return Account{
		ID:              a.ID.String(),
		UserID:          a.UserID.String(),
		Name:            a.Name,
		Type:            int(a.Type),
		Balance:         a.Balance.String(),
		StartingBalance: a.StartingBalance.String(),
	}
}

// actionProcessor runs one mutating action through the engine queue.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
