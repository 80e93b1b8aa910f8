package transfer

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// UpdateTransferBody is the request body for updating a transfer.
type UpdateTransferBody struct {
	FromAccountID   string `json:"fromAccountID" required:"true" format:"uuid" doc:"Source account UUID"`
	ToAccountID     string `json:"toAccountID" required:"true" format:"uuid" doc:"Destination account UUID"`
	Amount          string `json:"amount" required:"true" doc:"Positive decimal amount"`
	Description     string `json:"description" doc:"Description of the transfer"`
	TransactionDate string `json:"transactionDate" format:"date-time" doc:"RFC3339 transfer date, defaults to now"`
}

// UpdateTransferInput is the Huma input for updating a transfer.
type UpdateTransferInput struct {
	ID    string `path:"id" format:"uuid" doc:"Transfer UUID"`
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
	Body  UpdateTransferBody
}

// UpdateTransferOutput is the Huma output for updating a transfer.
type UpdateTransferOutput struct {
	Body Transfer
}

// UpdateTransferHandler handles PUT /v1/transfer/{id}.
type UpdateTransferHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewUpdateTransferHandler creates a new UpdateTransferHandler.
func NewUpdateTransferHandler(op actionProcessor, checker auth.Checker) *UpdateTransferHandler {
	return &UpdateTransferHandler{Operator: op, Checker: checker}
}

// Register registers the update transfer endpoint with the Huma API.
func (h *UpdateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transfer",
		Method:      http.MethodPut,
		Path:        "/v1/transfer/{id}",
		Summary:     "Update transfer",
		Description: "Replaces a transfer, reversing the old movement and applying the new one.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *UpdateTransferHandler) handle(ctx context.Context, input *UpdateTransferInput) (*UpdateTransferOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "transfers", auth.ActionUpdate) {
		return nil, httperr.Forbidden()
	}

	transferID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transfer id", err)
	}
	fromAccountID, err := uuid.FromString(input.Body.FromAccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid fromAccountID", err)
	}
	toAccountID, err := uuid.FromString(input.Body.ToAccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid toAccountID", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	var date time.Time
	if input.Body.TransactionDate != "" {
		date, err = time.Parse(time.RFC3339, input.Body.TransactionDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
	}

	action := &actions.UpdateTransfer{
		TransferID:      transferID,
		FromAccountID:   fromAccountID,
		ToAccountID:     toAccountID,
		Amount:          amount,
		Description:     input.Body.Description,
		TransactionDate: date,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to update transfer")
	}

	updated := action.Updated
	return &UpdateTransferOutput{
		Body: Transfer{
			ID:              updated.ID.String(),
			FromAccountID:   updated.FromAccountID.String(),
			ToAccountID:     updated.ToAccountID.String(),
			Amount:          updated.Amount.String(),
			Description:     updated.Description,
			TransactionDate: updated.TransactionDate.Format(time.RFC3339),
			CreatedAt:       updated.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}
