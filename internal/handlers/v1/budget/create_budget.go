package budget

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

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	UserID      string `json:"userID" required:"true" format:"uuid" doc:"Owning user UUID"`
	CategoryID  string `json:"categoryID" required:"true" format:"uuid" doc:"Expense category UUID to cap"`
	AmountLimit string `json:"amountLimit" required:"true" doc:"Positive decimal spending cap"`
	PeriodStart string `json:"periodStart" required:"true" format:"date-time" doc:"Inclusive period start"`
	PeriodEnd   string `json:"periodEnd" required:"true" format:"date-time" doc:"Inclusive period end"`
}

// CreateBudgetInput is the Huma input for creating a budget.
type CreateBudgetInput struct {
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
	Body  CreateBudgetBody
}

// CreateBudgetResponse is the response body for creating a budget.
type CreateBudgetResponse struct {
	ID string `json:"id" doc:"UUID of the created budget"`
}

// CreateBudgetOutput is the Huma output for creating a budget.
type CreateBudgetOutput struct {
	Status int
	Body   CreateBudgetResponse
}

// CreateBudgetHandler handles POST /v1/budget.
type CreateBudgetHandler struct {
	Operator actionProcessor
	Checker  auth.Checker
}

// NewCreateBudgetHandler creates a new CreateBudgetHandler.
func NewCreateBudgetHandler(op actionProcessor, checker auth.Checker) *CreateBudgetHandler {
	return &CreateBudgetHandler{Operator: op, Checker: checker}
}

// Register registers the create budget endpoint with the Huma API.
func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-budget",
		Method:        http.MethodPost,
		Path:          "/v1/budget",
		Summary:       "Create budget",
		Description:   "Caps the expense total of a category over an inclusive period.",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "budgets", auth.ActionCreate) {
		return nil, httperr.Forbidden()
	}

	userID, err := uuid.FromString(input.Body.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
	}
	amountLimit, err := decimal.NewFromString(input.Body.AmountLimit)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amountLimit", err)
	}
	periodStart, err := time.Parse(time.RFC3339, input.Body.PeriodStart)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid periodStart", err)
	}
	periodEnd, err := time.Parse(time.RFC3339, input.Body.PeriodEnd)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid periodEnd", err)
	}

	action := &actions.CreateBudget{
		UserID:      userID,
		CategoryID:  categoryID,
		AmountLimit: amountLimit,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}

	if err := h.Operator.Process(ctx, action); err != nil {
		return nil, httperr.Map(err, "failed to create budget")
	}

	return &CreateBudgetOutput{
		Status: http.StatusCreated,
		Body:   CreateBudgetResponse{ID: action.Created.ID.String()},
	}, nil
}
