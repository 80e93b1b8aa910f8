package budget

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// Budget is the API response model for a budget. Dates are
// RFC3339; the period is inclusive on both ends.
type Budget struct {
	ID          string `json:"id" doc:"Budget UUID"`
	UserID      string `json:"userID" doc:"Owning user UUID"`
	CategoryID  string `json:"categoryID" doc:"Capped category UUID"`
	AmountLimit string `json:"amountLimit" doc:"Decimal spending cap"`
	PeriodStart string `json:"periodStart" doc:"Inclusive period start"`
	PeriodEnd   string `json:"periodEnd" doc:"Inclusive period end"`
}

// actionProcessor runs one mutating action through the engine queue.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}
