package transaction

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	AccountID       string `json:"accountID" doc:"Account UUID"`
	CategoryID      string `json:"categoryID" doc:"Category UUID"`
	Amount          string `json:"amount" doc:"Decimal amount"`
	Description     string `json:"description" doc:"Description of the transaction"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

// actionProcessor runs one mutating action through the engine queue.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
