package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	UserID          string `json:"userID" required:"true" format:"uuid" doc:"Owning user UUID"`
	Name            string `json:"name" required:"true" minLength:"1" doc:"Account name"`
	Type            int    `json:"type" minimum:"0" maximum:"4" doc:"Account type: 0=Cash, 1=Credit Cards, 2=Investments, 3=Loans, 4=Assets"`
	StartingBalance string `json:"startingBalance" doc:"Non-negative decimal opening balance, defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
	Body  CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"UUID of the created account"`
}

// CreateAccountOutput is the Huma output for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(op actionProcessor, checker auth.Checker) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op, Checker: checker}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-account",
		Method:        http.MethodPost,
		Path:          "/v1/account",
		Summary:       "Create account",
		Description:   "Opens a new account with an optional starting balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "accounts", auth.ActionCreate) {
		return nil, httperr.Forbidden()
	}

	userID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	startingBalance := decimal.Zero
	if input.Body.StartingBalance != "" {
		startingBalance, err = decimal.NewFromString(input.Body.StartingBalance)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
		}
	}

	action := &actions.CreateAccount{
		UserID:          userID,
		Name:            input.Body.Name,
		Type:            account.AccountType(input.Body.Type),
		StartingBalance: startingBalance,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to create account")
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: action.Created.ID.String()},
	}, nil
}
