package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// perform runs one action the way the operator does: a fresh writer,
// Perform, then commit on success or rollback on error.
func perform(t *testing.T, store storage.Storage, action IAction) error {
	t.Helper()
	writer, err := store.Write(context.Background())
	require.NoError(t, err)

	if err := action.Perform(context.Background(), writer); err != nil {
		require.NoError(t, writer.Rollback())
		return err
	}
	require.NoError(t, writer.Commit())
	return nil
}

func money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

// fixture seeds one user with an income category, an expense category, and
// an account holding the given balance.
type fixture struct {
	store     *memory.Store
	userID    uuid.UUID
	accountID uuid.UUID
	incomeID  uuid.UUID
	expenseID uuid.UUID
}

func newFixture(t *testing.T, balance string) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{store: store}

	writer, err := store.Write(context.Background())
	require.NoError(t, err)

	f.userID, err = writer.Users.Insert(context.Background(), &user.UserCreate{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)

	f.accountID, err = writer.Accounts.Insert(context.Background(), &account.AccountCreate{
		UserID:          f.userID,
		Name:            "Checking",
		Type:            account.AccountTypeCash,
		StartingBalance: money(t, balance),
	})
	require.NoError(t, err)

	f.incomeID, err = writer.Categories.Insert(context.Background(), &category.CategoryCreate{
		UserID: f.userID,
		Name:   "Salary",
		Type:   category.PolarityIncome,
	})
	require.NoError(t, err)

	f.expenseID, err = writer.Categories.Insert(context.Background(), &category.CategoryCreate{
		UserID: f.userID,
		Name:   "Groceries",
		Type:   category.PolarityExpense,
	})
	require.NoError(t, err)

	require.NoError(t, writer.Commit())
	return f
}

func (f *fixture) addAccount(t *testing.T, balance string) uuid.UUID {
	t.Helper()
	writer, err := f.store.Write(context.Background())
	require.NoError(t, err)
	id, err := writer.Accounts.Insert(context.Background(), &account.AccountCreate{
		UserID:          f.userID,
		Name:            "Savings",
		Type:            account.AccountTypeCash,
		StartingBalance: money(t, balance),
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit())
	return id
}

func (f *fixture) addBudget(t *testing.T, categoryID uuid.UUID, limit string, start, end time.Time) uuid.UUID {
	t.Helper()
	writer, err := f.store.Write(context.Background())
	require.NoError(t, err)
	id, err := writer.Budgets.Insert(context.Background(), &budget.BudgetCreate{
		UserID:      f.userID,
		CategoryID:  categoryID,
		AmountLimit: money(t, limit),
		PeriodStart: start,
		PeriodEnd:   end,
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit())
	return id
}

func (f *fixture) balance(t *testing.T, accountID uuid.UUID) decimal.Decimal {
	t.Helper()
	row, err := f.store.Reader().Accounts.FindByID(context.Background(), accountID)
	require.NoError(t, err)
	require.NotNil(t, row)
	return row.Balance
}

func (f *fixture) createTransaction(t *testing.T, categoryID uuid.UUID, amount string, date time.Time) uuid.UUID {
	t.Helper()
	action := &CreateTransaction{
		AccountID:       f.accountID,
		CategoryID:      categoryID,
		Amount:          money(t, amount),
		Description:     "seed",
		TransactionDate: date,
	}
	require.NoError(t, perform(t, f.store, action))
	return action.Created.ID
}
