package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

type seed struct {
	store     *memory.Store
	svc       *Service
	userID    uuid.UUID
	accountID uuid.UUID
	expenseID uuid.UUID
}

func newSeed(t *testing.T) *seed {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)

	userID, err := writer.Users.Insert(ctx, &user.UserCreate{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	accountID, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		UserID:          userID,
		Name:            "Checking",
		Type:            account.AccountTypeCash,
		StartingBalance: decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	expenseID, err := writer.Categories.Insert(ctx, &category.CategoryCreate{
		UserID: userID,
		Name:   "Groceries",
		Type:   category.PolarityExpense,
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit())

	return &seed{
		store:     store,
		svc:       NewService(store.Reader()),
		userID:    userID,
		accountID: accountID,
		expenseID: expenseID,
	}
}

func (s *seed) addTransactions(t *testing.T, n int, date time.Time) {
	t.Helper()
	ctx := context.Background()
	writer, err := s.store.Write(ctx)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
			AccountID:       s.accountID,
			CategoryID:      s.expenseID,
			Amount:          decimal.RequireFromString("1.00"),
			Description:     fmt.Sprintf("row %d", i),
			TransactionDate: date,
		})
		require.NoError(t, err)
	}
	require.NoError(t, writer.Commit())
}

func TestGetAccount_MissingReturnsNil(t *testing.T) {
	s := newSeed(t)

	acct, err := s.svc.Account.GetAccount(context.Background(), uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	assert.Nil(t, acct)
}

func TestGetAccount_Found(t *testing.T) {
	s := newSeed(t)

	acct, err := s.svc.Account.GetAccount(context.Background(), s.accountID)
	require.NoError(t, err)
	require.NotNil(t, acct)
	assert.Equal(t, "Checking", acct.Name)
	assert.True(t, acct.Balance.Equal(decimal.RequireFromString("100.00")))
}

func TestListAccounts_NoNextCursorOnFinalPage(t *testing.T) {
	s := newSeed(t)

	accounts, next, err := s.svc.Account.ListAccounts(context.Background(), &s.userID, nil)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Nil(t, next)
}

func TestListTransactions_CursorPagination(t *testing.T) {
	s := newSeed(t)
	s.addTransactions(t, 5, time.Now())

	cursor := &TransactionCursor{Limit: 2, MaxCreationTime: time.Now().Add(time.Hour)}
	var seen int
	for page := 0; ; page++ {
		rows, next, err := s.svc.Transaction.ListTransactions(context.Background(), nil, cursor)
		require.NoError(t, err)
		seen += len(rows)
		if next == nil {
			break
		}
		assert.Len(t, rows, 2)
		cursor = next
		require.Less(t, page, 5, "pagination did not terminate")
	}
	assert.Equal(t, 5, seen)
}

func TestListTransactions_FilterByCategory(t *testing.T) {
	s := newSeed(t)
	s.addTransactions(t, 3, time.Now())

	otherID := uuid.Must(uuid.NewV4())
	rows, _, err := s.svc.Transaction.ListTransactions(context.Background(), &TransactionQuery{
		CategoryID: &otherID,
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, _, err = s.svc.Transaction.ListTransactions(context.Background(), &TransactionQuery{
		CategoryID: &s.expenseID,
	}, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestListBudgets_SpentAndRemaining(t *testing.T) {
	s := newSeed(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	s.addTransactions(t, 3, start.AddDate(0, 0, 10))

	ctx := context.Background()
	writer, err := s.store.Write(ctx)
	require.NoError(t, err)
	_, err = writer.Budgets.Insert(ctx, &budget.BudgetCreate{
		UserID:      s.userID,
		CategoryID:  s.expenseID,
		AmountLimit: decimal.RequireFromString("10.00"),
		PeriodStart: start,
		PeriodEnd:   end,
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit())

	statuses, err := s.svc.Budget.ListBudgets(ctx, s.userID)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Spent.Equal(decimal.RequireFromString("3.00")))
	assert.True(t, statuses[0].Remaining.Equal(decimal.RequireFromString("7.00")))
}

func TestCategoryTotals(t *testing.T) {
	s := newSeed(t)
	s.addTransactions(t, 4, time.Now())

	totals, err := s.svc.Report.CategoryTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, "Groceries", totals[0].CategoryName)
	assert.Equal(t, int64(4), totals[0].TransactionCount)
	assert.True(t, totals[0].TotalAmount.Equal(decimal.RequireFromString("4.00")))
}

func TestTransactionsInRange_InclusiveBounds(t *testing.T) {
	s := newSeed(t)
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	s.addTransactions(t, 2, day)

	rows, err := s.svc.Report.TransactionsInRange(context.Background(), nil, day, day)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = s.svc.Report.TransactionsInRange(context.Background(), nil, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetUser_DoesNotExposePasswordHash(t *testing.T) {
	s := newSeed(t)

	u, err := s.svc.User.GetUser(context.Background(), s.userID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
}
