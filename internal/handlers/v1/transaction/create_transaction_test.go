package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// mockProcessor is a mock for actionProcessor.
type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

// newTestAPI registers the handler against a humatest API and returns it.
func newTestAPI(t *testing.T, op actionProcessor) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(op, auth.NewRoleChecker()).Register(api)
	return api
}

// -- parseCreateTransactionInput unit tests --
// These verify individual parsed field values which the HTTP tests don't assert.

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	transactionDate := "2026-01-15T10:30:00Z"

	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			AccountID:       accountID.String(),
			CategoryID:      categoryID.String(),
			Amount:          "123.45",
			Description:     "Test Transaction",
			TransactionDate: transactionDate,
		},
	}

	parsedAccountID, parsedCategoryID, parsedAmount, parsedDescription, parsedDate, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, accountID, parsedAccountID)
	assert.Equal(t, categoryID, parsedCategoryID)
	assert.True(t, parsedAmount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, "Test Transaction", parsedDescription)
	expectedDate, _ := time.Parse(time.RFC3339, transactionDate)
	assert.True(t, parsedDate.Equal(expectedDate))
}

func TestParseCreateTransactionInput_ValidInputWithoutDate(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())

	input := &CreateTransactionInput{
		Body: CreateTransactionBody{
			AccountID:   accountID.String(),
			CategoryID:  categoryID.String(),
			Amount:      "9.99",
			Description: "Undated",
		},
	}

	_, _, parsedAmount, _, parsedDate, err := parseCreateTransactionInput(input)
	assert.NoError(t, err)
	assert.True(t, parsedAmount.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, parsedDate.IsZero())
}

// -- HTTP integration tests (full Huma stack via humatest) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	txID := uuid.Must(uuid.NewV4())

	mockOp := new(mockProcessor)
	mockOp.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		create, ok := a.(*actions.CreateTransaction)
		return ok &&
			create.AccountID == accountID &&
			create.CategoryID == categoryID &&
			create.Amount.Equal(decimal.RequireFromString("12.50")) &&
			create.Description == "Coffee"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateTransaction).Created = &transaction.Transaction{ID: txID}
	}).Return(nil)

	resp := newTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		AccountID:   accountID.String(),
		CategoryID:  categoryID.String(),
		Amount:      "12.50",
		Description: "Coffee",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateTransactionResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, txID.String(), body.ID)
	mockOp.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MissingRequiredFields(t *testing.T) {
	mockOp := new(mockProcessor)

	// Huma schema validation rejects the request before the handler runs.
	resp := newTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		AccountID: uuid.Must(uuid.NewV4()).String(),
		// CategoryID, Amount, Description omitted
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_InvalidAccountID(t *testing.T) {
	mockOp := new(mockProcessor)

	// Huma's format:"uuid" schema validation rejects this before the handler runs.
	resp := newTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		AccountID:   "not-a-uuid",
		CategoryID:  uuid.Must(uuid.NewV4()).String(),
		Amount:      "10.00",
		Description: "Test",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_InvalidAmount(t *testing.T) {
	mockOp := new(mockProcessor)

	// Amount is a plain string with no Huma format tag, so parseCreateTransactionInput
	// handles validation and returns 400.
	resp := newTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
		AccountID:   uuid.Must(uuid.NewV4()).String(),
		CategoryID:  uuid.Must(uuid.NewV4()).String(),
		Amount:      "not-a-decimal",
		Description: "Test",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &actions.ValidationError{Message: "amount must be positive"}, http.StatusBadRequest},
		{"not found", &actions.NotFoundError{Entity: "account"}, http.StatusNotFound},
		{"conflict", &actions.ConflictError{Message: "account and category belong to different users"}, http.StatusConflict},
		{"insufficient funds", &actions.InsufficientFundsError{}, http.StatusConflict},
		{"budget exceeded", &actions.BudgetExceededError{}, http.StatusConflict},
		{"busy", storage.ErrBusy, http.StatusServiceUnavailable},
		{"unknown", errors.New("database unavailable"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockOp := new(mockProcessor)
			mockOp.On("Process", mock.Anything, mock.Anything).Return(tc.err)

			resp := newTestAPI(t, mockOp).Post("/v1/transaction", CreateTransactionBody{
				AccountID:   uuid.Must(uuid.NewV4()).String(),
				CategoryID:  uuid.Must(uuid.NewV4()).String(),
				Amount:      "10.00",
				Description: "Test",
			})

			assert.Equal(t, tc.status, resp.Code)
			mockOp.AssertExpectations(t)
		})
	}
}

func TestHTTP_CreateTransaction_AuditRoleForbidden(t *testing.T) {
	mockOp := new(mockProcessor)

	resp := newTestAPI(t, mockOp).Post("/v1/transaction",
		"X-Role: audit_user",
		CreateTransactionBody{
			AccountID:   uuid.Must(uuid.NewV4()).String(),
			CategoryID:  uuid.Must(uuid.NewV4()).String(),
			Amount:      "10.00",
			Description: "Test",
		})

	assert.Equal(t, http.StatusForbidden, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_CreateTransaction_UnknownRoleForbidden(t *testing.T) {
	mockOp := new(mockProcessor)

	resp := newTestAPI(t, mockOp).Post("/v1/transaction",
		"X-Role: intruder",
		CreateTransactionBody{
			AccountID:   uuid.Must(uuid.NewV4()).String(),
			CategoryID:  uuid.Must(uuid.NewV4()).String(),
			Amount:      "10.00",
			Description: "Test",
		})

	assert.Equal(t, http.StatusForbidden, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}
