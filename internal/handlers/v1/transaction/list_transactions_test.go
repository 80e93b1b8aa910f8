package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/service"
)

// mockTransactionLister is a mock for transactionLister.
type mockTransactionLister struct {
	mock.Mock
}

func (m *mockTransactionLister) ListTransactions(ctx context.Context, query *service.TransactionQuery, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, query, cursor)
	var rows []service.Transaction
	if args.Get(0) != nil {
		rows = args.Get(0).([]service.Transaction)
	}
	var next *service.TransactionCursor
	if args.Get(1) != nil {
		next = args.Get(1).(*service.TransactionCursor)
	}
	return rows, next, args.Error(2)
}

func newListTestAPI(t *testing.T, svc transactionLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListTransactionsHandler(svc, auth.NewRoleChecker()).Register(api)
	return api
}

func sampleTransaction() service.Transaction {
	return service.Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		AccountID:       uuid.Must(uuid.NewV4()),
		CategoryID:      uuid.Must(uuid.NewV4()),
		Amount:          decimal.RequireFromString("12.50"),
		Description:     "Coffee",
		TransactionDate: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		CreatedAt:       time.Date(2026, 1, 15, 10, 30, 1, 0, time.UTC),
	}
}

func TestHTTP_ListTransactions_FirstPage(t *testing.T) {
	tx := sampleTransaction()

	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListTransactions", mock.Anything, mock.Anything, (*service.TransactionCursor)(nil)).
		Return([]service.Transaction{tx}, nil, nil)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", ListTransactionsBody{})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Transactions, 1)
	assert.Equal(t, tx.ID.String(), body.Transactions[0].ID)
	assert.Equal(t, "12.5", body.Transactions[0].Amount)
	assert.Nil(t, body.NextCursor)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_NextCursorRoundTrip(t *testing.T) {
	maxCreation := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListTransactions", mock.Anything, mock.Anything, (*service.TransactionCursor)(nil)).
		Return([]service.Transaction{sampleTransaction()}, &service.TransactionCursor{
			Position:        2,
			Limit:           2,
			MaxCreationTime: maxCreation,
		}, nil).Once()

	api := newListTestAPI(t, mockSvc)
	resp := api.Post("/v1/transaction/list", ListTransactionsBody{})
	assert.Equal(t, http.StatusOK, resp.Code)

	var body ListTransactionsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotNil(t, body.NextCursor)

	// Feeding the returned cursor back produces the same service cursor.
	mockSvc.On("ListTransactions", mock.Anything, mock.Anything, mock.MatchedBy(func(c *service.TransactionCursor) bool {
		return c != nil && c.Position == 2 && c.Limit == 2 && c.MaxCreationTime.Equal(maxCreation)
	})).Return(nil, nil, nil).Once()

	resp = api.Post("/v1/transaction/list", ListTransactionsBody{Cursor: body.NextCursor})
	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_QueryFilters(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListTransactions", mock.Anything, mock.MatchedBy(func(q *service.TransactionQuery) bool {
		return q != nil && q.AccountID != nil && *q.AccountID == accountID &&
			q.DateFrom != nil && q.DateTo != nil
	}), mock.Anything).Return(nil, nil, nil)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", ListTransactionsBody{
		AccountID: accountID.String(),
		DateFrom:  "2026-01-01T00:00:00Z",
		DateTo:    "2026-01-31T00:00:00Z",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_InvalidAccountID(t *testing.T) {
	mockSvc := new(mockTransactionLister)

	// Huma's format:"uuid" schema validation rejects this before the handler runs.
	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", ListTransactionsBody{
		AccountID: "not-a-uuid",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ListTransactions")
}

func TestHTTP_ListTransactions_AuditRoleForbidden(t *testing.T) {
	mockSvc := new(mockTransactionLister)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list",
		"X-Role: audit_user",
		ListTransactionsBody{})

	assert.Equal(t, http.StatusForbidden, resp.Code)
	mockSvc.AssertNotCalled(t, "ListTransactions")
}

func TestHTTP_ListTransactions_AdminRoleAllowed(t *testing.T) {
	mockSvc := new(mockTransactionLister)
	mockSvc.On("ListTransactions", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil, nil)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list",
		"X-Role: db_admin",
		ListTransactionsBody{})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}
