package report

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

// RangeTransaction is one transaction row in the range report.
type RangeTransaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	AccountID       string `json:"accountID" doc:"Account UUID"`
	CategoryID      string `json:"categoryID" doc:"Category UUID"`
	Amount          string `json:"amount" doc:"Decimal amount"`
	Description     string `json:"description" doc:"Description of the transaction"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date"`
}

// TransactionsInRangeInput is the Huma input for the range report.
type TransactionsInRangeInput struct {
	From      string `query:"from" required:"true" format:"date-time" doc:"Inclusive lower bound on transaction date"`
	To        string `query:"to" required:"true" format:"date-time" doc:"Inclusive upper bound on transaction date"`
	AccountID string `query:"accountID" format:"uuid" doc:"Restrict to one account"`
	XRole     string `header:"X-Role" doc:"Caller role, defaults to app_user"`
}

// TransactionsInRangeResponseBody is the response body for the range report.
type TransactionsInRangeResponseBody struct {
	Transactions []RangeTransaction `json:"transactions" doc:"Transactions dated inside the range"`
}

// TransactionsInRangeOutput is the Huma output for the range report.
type TransactionsInRangeOutput struct {
	Body TransactionsInRangeResponseBody
}

// rangeReporter is the interface for the range report.
type rangeReporter interface {
	TransactionsInRange(ctx context.Context, accountID *uuid.UUID, from, to time.Time) ([]service.Transaction, error)
}

// TransactionsInRangeHandler handles GET /v1/report/transactions.
type TransactionsInRangeHandler struct {
	ReportService rangeReporter
	Checker       auth.Checker
}

// NewTransactionsInRangeHandler creates a new TransactionsInRangeHandler.
func NewTransactionsInRangeHandler(svc rangeReporter, checker auth.Checker) *TransactionsInRangeHandler {
	return &TransactionsInRangeHandler{ReportService: svc, Checker: checker}
}

// Register registers the range report endpoint with the Huma API.
func (h *TransactionsInRangeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-transactions-in-range",
		Method:      http.MethodGet,
		Path:        "/v1/report/transactions",
		Summary:     "Transactions in range report",
		Description: "Returns every transaction dated inside the inclusive range.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *TransactionsInRangeHandler) handle(ctx context.Context, input *TransactionsInRangeInput) (*TransactionsInRangeOutput, error) {
	if !h.Checker.CanPerform(auth.Role(input.XRole), "reports", auth.ActionView) {
		return nil, httperr.Forbidden()
	}

	from, err := time.Parse(time.RFC3339, input.From)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid from date", err)
	}
	to, err := time.Parse(time.RFC3339, input.To)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid to date", err)
	}
	if to.Before(from) {
		return nil, huma.NewError(http.StatusBadRequest, "to date precedes from date")
	}

	var accountID *uuid.UUID
	if input.AccountID != "" {
		parsed, parseErr := uuid.FromString(input.AccountID)
		if parseErr != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", parseErr)
		}
		accountID = &parsed
	}

	transactions, err := h.ReportService.TransactionsInRange(ctx, accountID, from, to)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build transactions report", err)
	}

	resp := TransactionsInRangeResponseBody{
		Transactions: make([]RangeTransaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = RangeTransaction{
			ID:              tx.ID.String(),
			AccountID:       tx.AccountID.String(),
			CategoryID:      tx.CategoryID.String(),
			Amount:          tx.Amount.String(),
			Description:     tx.Description,
			TransactionDate: tx.TransactionDate.Format(time.RFC3339),
		}
	}

	return &TransactionsInRangeOutput{Body: resp}, nil
}
