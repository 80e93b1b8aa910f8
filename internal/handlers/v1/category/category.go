package category

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// Category is the API response model for a category.
type Category struct {
	ID     string `json:"id" doc:"Category UUID"`
	UserID string `json:"userID" doc:"Owning user UUID"`
	Name   string `json:"name" doc:"Category name"`
	Type   string `json:"type" doc:"Polarity: income or expense"`
}

// actionProcessor runs one mutating action through the engine queue.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
