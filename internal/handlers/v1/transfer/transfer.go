package transfer

import (
	"context"
	"time"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Transfer is the API response model for a transfer.
type Transfer struct {
	ID              string `json:"id" doc:"Transfer UUID"`
	FromAccountID   string `json:"fromAccountID" doc:"Source account UUID"`
	ToAccountID     string `json:"toAccountID" doc:"Destination account UUID"`
	Amount          string `json:"amount" doc:"Decimal amount"`
	Description     string `json:"description" doc:"Description of the transfer"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transfer date"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func transferFromService(t service.Transfer) Transfer {
	return Transfer{
		ID:              t.ID.String(),
		FromAccountID:   t.FromAccountID.String(),
		ToAccountID:     t.ToAccountID.String(),
		Amount:          t.Amount.String(),
		Description:     t.Description,
		TransactionDate: t.TransactionDate.Format(time.RFC3339),
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}

// actionProcessor runs one mutating action through the engine queue.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
