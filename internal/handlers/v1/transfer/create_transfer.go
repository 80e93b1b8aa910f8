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

// CreateTransferBody is the request body for creating a transfer.
type CreateTransferBody struct {
	FromAccountID   string `json:"fromAccountID" required:"true" format:"uuid" doc:"Source account UUID"`
	ToAccountID     string `json:"toAccountID" required:"true" format:"uuid" doc:"Destination account UUID"`
	Amount          string `json:"amount" required:"true" doc:"Positive decimal amount"`
	Description     string `json:"description" doc:"Description of the transfer"`
	TransactionDate string `json:"transactionDate" format:"date-time" doc:"RFC3339 transfer date, defaults to now"`
}

// CreateTransferInput is the Huma input for creating a transfer.
type CreateTransferInput struct {
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
	Body  CreateTransferBody
}

// CreateTransferResponse is the response body for creating a transfer.
type CreateTransferResponse struct {
	ID string `json:"id" doc:"UUID of the created transfer"`
}

// CreateTransferOutput is the Huma output for creating a transfer.
type CreateTransferOutput struct {
	Status int
	Body   CreateTransferResponse
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewCreateTransferHandler creates a new CreateTransferHandler.
func NewCreateTransferHandler(op actionProcessor, checker auth.Checker) *CreateTransferHandler {
	return &CreateTransferHandler{Operator: op, Checker: checker}
}

// Register registers the create transfer endpoint with the Huma API.
func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transfer",
		Method:        http.MethodPost,
		Path:          "/v1/transfer",
		Summary:       "Create transfer",
		Description:   "Moves funds between two accounts of the same user.",
		Tags:          []string{"Transfers"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "transfers", auth.ActionCreate) {
		return nil, httperr.Forbidden()
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

	action := &actions.CreateTransfer{
		FromAccountID:   fromAccountID,
		ToAccountID:     toAccountID,
		Amount:          amount,
		Description:     input.Body.Description,
		TransactionDate: date,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to create transfer")
	}

	return &CreateTransferOutput{
		Status: http.StatusCreated,
		Body:   CreateTransferResponse{ID: action.Created.ID.String()},
	}, nil
}
