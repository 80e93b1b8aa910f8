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

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID       string `json:"accountID" required:"true" format:"uuid" doc:"Account UUID"`
	CategoryID      string `json:"categoryID" required:"true" format:"uuid" doc:"Category UUID"`
	Amount          string `json:"amount" required:"true" doc:"Positive decimal amount"`
	Description     string `json:"description" required:"true" minLength:"1" doc:"Description of the transaction"`
	TransactionDate string `json:"transactionDate,omitempty" format:"date-time" doc:"RFC3339 transaction date, defaults to now"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
	Body  CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"UUID of the created transaction"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op actionProcessor, checker auth.Checker) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op, Checker: checker}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Creates a new transaction and applies its effect to the account balance.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(input *CreateTransactionInput) (accountID, categoryID uuid.UUID, amount decimal.Decimal, description string, date time.Time, err error) {
	accountID, err = uuid.FromString(input.Body.AccountID)
	if err != nil {
		err = huma.NewError(http.StatusBadRequest, "invalid accountID", err)
		return
	}
	categoryID, err = uuid.FromString(input.Body.CategoryID)
	if err != nil {
		err = huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		return
	}
	amount, err = decimal.NewFromString(input.Body.Amount)
	if err != nil {
		err = huma.NewError(http.StatusBadRequest, "invalid amount", err)
		return
	}
	description = input.Body.Description
	if input.Body.TransactionDate != "" {
		date, err = time.Parse(time.RFC3339, input.Body.TransactionDate)
		if err != nil {
			err = huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
			return
		}
	}
	return
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "transactions", auth.ActionCreate) {
		return nil, httperr.Forbidden()
	}

	accountID, categoryID, amount, description, date, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		Description:     description,
		TransactionDate: date,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: action.Created.ID.String()},
	}, nil
}
