// Package report exposes read-only aggregates. Reports are the one
// resource the audit role may view, so every handler here checks the
// "reports" table capability.
package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/service"
)

// CategoryTotal is one row of the per-category aggregate report.
type CategoryTotal struct {
	CategoryName     string `json:"categoryName" doc:"Category name"`
	CategoryType     string `json:"categoryType" doc:"Polarity: income or expense"`
	TotalAmount      string `json:"totalAmount" doc:"Decimal sum of all transaction amounts"`
	TransactionCount int64  `json:"transactionCount" doc:"Number of transactions"`
}

// CategoryTotalsInput is the Huma input for the category totals report.
type CategoryTotalsInput struct {
	XRole string `header:"X-Role" doc:"Caller role, defaults to app_user"`
}

// CategoryTotalsResponseBody is the response body for the category totals report.
type CategoryTotalsResponseBody struct {
	Totals []CategoryTotal `json:"totals" doc:"Per-category sums and counts"`
}

// CategoryTotalsOutput is the Huma output for the category totals report.
type CategoryTotalsOutput struct {
	Body CategoryTotalsResponseBody
}

// categoryTotalsReporter is the interface for the category totals report.
type categoryTotalsReporter interface {
	CategoryTotals(ctx context.Context) ([]service.CategoryTotal, error)
}

// CategoryTotalsHandler handles GET /v1/report/category-totals.
type CategoryTotalsHandler struct {
	ReportService categoryTotalsReporter
	Checker       auth.Checker
}

// NewCategoryTotalsHandler creates a new CategoryTotalsHandler.
func NewCategoryTotalsHandler(svc categoryTotalsReporter, checker auth.Checker) *CategoryTotalsHandler {
	return &CategoryTotalsHandler{ReportService: svc, Checker: checker}
}

// Register registers the category totals endpoint with the Huma API.
func (h *CategoryTotalsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-category-totals",
		Method:      http.MethodGet,
		Path:        "/v1/report/category-totals",
		Summary:     "Category totals report",
		Description: "Returns per-category transaction sums and counts.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *CategoryTotalsHandler) handle(ctx context.Context, input *CategoryTotalsInput) (*CategoryTotalsOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "reports", auth.ActionView) {
		return nil, httperr.Forbidden()
	}

	totals, err := h.ReportService.CategoryTotals(ctx)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build category totals report", err)
	}

	resp := CategoryTotalsResponseBody{
		Totals: make([]CategoryTotal, len(totals)),
	}
	for i, t := range totals {
		resp.Totals[i] = CategoryTotal{
			CategoryName:     t.CategoryName,
			CategoryType:     t.CategoryType,
			TotalAmount:      t.TotalAmount.String(),
			TransactionCount: t.TransactionCount,
		}
	}

	return &CategoryTotalsOutput{Body: resp}, nil
}
