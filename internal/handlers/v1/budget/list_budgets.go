package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/service"
)

// BudgetStatus is a budget annotated with its current consumption.
type BudgetStatus struct {
	Budget
	Spent     string `json:"spent" doc:"Decimal amount already spent inside the period"`
	Remaining string `json:"remaining" doc:"Decimal headroom left, negative once over the cap"`
}

// ListBudgetsInput is the Huma input for listing a user's budgets.
type ListBudgetsInput struct {
	UserID string `query:"userID" required:"true" format:"uuid" doc:"Owning user UUID"`
	XRole  string `header:"X-Role" doc:"Caller role, defaults to app_user"`
}

// ListBudgetsResponseBody is the response body for listing budgets.
type ListBudgetsResponseBody struct {
	Budgets []BudgetStatus `json:"budgets" doc:"The user's budgets with current consumption"`
}

// ListBudgetsOutput is the Huma output for listing budgets.
type ListBudgetsOutput struct {
	Body ListBudgetsResponseBody
}

// budgetLister is the interface for listing budgets.
type budgetLister interface {
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]service.BudgetStatus, error)
}

// ListBudgetsHandler handles GET /v1/budget.
type ListBudgetsHandler struct {
	BudgetService budgetLister
	Checker       auth.Checker
}

// NewListBudgetsHandler creates a new ListBudgetsHandler.
func NewListBudgetsHandler(svc budgetLister, checker auth.Checker) *ListBudgetsHandler {
	return &ListBudgetsHandler{BudgetService: svc, Checker: checker}
}

// Register registers the list budgets endpoint with the Huma API.
func (h *ListBudgetsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "List budgets",
		Description: "Returns every budget belonging to one user, with the amount spent inside each period.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *ListBudgetsHandler) handle(ctx context.Context, input *ListBudgetsInput) (*ListBudgetsOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "budgets", auth.ActionView) {
		return nil, httperr.Forbidden()
	}

	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	budgets, err := h.BudgetService.ListBudgets(ctx, userID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list budgets", err)
	}

	resp := ListBudgetsResponseBody{
		Budgets: make([]BudgetStatus, len(budgets)),
	}
	for i, b := range budgets {
		resp.Budgets[i] = BudgetStatus{
			Budget: Budget{
				ID:          b.ID.String(),
				UserID:      b.UserID.String(),
				CategoryID:  b.CategoryID.String(),
				AmountLimit: b.AmountLimit.String(),
				PeriodStart: b.PeriodStart.Format(time.RFC3339),
				PeriodEnd:   b.PeriodEnd.Format(time.RFC3339),
			},
			Spent:     b.Spent.String(),
			Remaining: b.Remaining.String(),
		}
	}

	return &ListBudgetsOutput{Body: resp}, nil
}
