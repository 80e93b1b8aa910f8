package transaction

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

// UpdateTransactionBody is the request body for updating a transaction.
// All monetary fields are required: an update fully replaces the
// transaction's effect.
type UpdateTransactionBody struct {
	AccountID       string `json:"accountID" required:"true" format:"uuid" doc:"Account UUID"`
	CategoryID      string `json:"categoryID" required:"true" format:"uuid" doc:"Category UUID"`
	Amount          string `json:"amount" required:"true" doc:"Positive decimal amount"`
	Description     string `json:"description" required:"true" minLength:"1" doc:"Description of the transaction"`
	TransactionDate string `json:"transactionDate" format:"date-time" doc:"RFC3339 transaction date, defaults to now"`
}

// UpdateTransactionInput is the Huma input for updating a transaction.
type UpdateTransactionInput struct {
	ID    string `path:"id" format:"uuid" doc:"Transaction UUID"`
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
	Body  UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for updating a transaction.
type UpdateTransactionOutput struct {
	Body Transaction
}

// UpdateTransactionHandler handles PUT /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(op actionProcessor, checker auth.Checker) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{Operator: op, Checker: checker}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/v1/transaction/{id}",
		Summary:     "Update transaction",
		Description: "Replaces a transaction, reversing its old effect and applying the new one.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "transactions", auth.ActionUpdate) {
		return nil, httperr.Forbidden()
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
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

	action := &actions.UpdateTransaction{
		TransactionID:   transactionID,
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		Description:     input.Body.Description,
		TransactionDate: date,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to update transaction")
	}

	updated := action.Updated
	return &UpdateTransactionOutput{
		Body: Transaction{
			ID:              updated.ID.String(),
			AccountID:       updated.AccountID.String(),
			CategoryID:      updated.CategoryID.String(),
			Amount:          updated.Amount.String(),
			Description:     updated.Description,
			TransactionDate: updated.TransactionDate.Format(time.RFC3339),
			CreatedAt:       updated.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}
