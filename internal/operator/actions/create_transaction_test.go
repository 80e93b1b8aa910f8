package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

func TestCreateTransaction_IncomeIncreasesBalance(t *testing.T) {
	f := newFixture(t, "100.00")

	action := &CreateTransaction{
		AccountID:   f.accountID,
		CategoryID:  f.incomeID,
		Amount:      money(t, "50.00"),
		Description: "paycheck",
	}
	require.NoError(t, perform(t, f.store, action))

	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "150.00")))
	require.NotNil(t, action.Created)
	assert.NotEqual(t, uuid.Nil, action.Created.ID)
	assert.Len(t, action.Changes(), 1)
}

func TestCreateTransaction_ExpenseDecreasesBalance(t *testing.T) {
	f := newFixture(t, "100.00")

	require.NoError(t, perform(t, f.store, &CreateTransaction{
		AccountID:   f.accountID,
		CategoryID:  f.expenseID,
		Amount:      money(t, "30.00"),
		Description: "food",
	}))

	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "70.00")))
}

func TestCreateTransaction_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &CreateTransaction{
		AccountID:   f.accountID,
		CategoryID:  f.expenseID,
		Amount:      money(t, "0"),
		Description: "zero",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
}

func TestCreateTransaction_ExactBalanceSpendAllowed(t *testing.T) {
	f := newFixture(t, "10.00")

	require.NoError(t, perform(t, f.store, &CreateTransaction{
		AccountID:   f.accountID,
		CategoryID:  f.expenseID,
		Amount:      money(t, "10.00"),
		Description: "everything",
	}))

	assert.True(t, f.balance(t, f.accountID).IsZero())
}

func TestCreateTransaction_OverdraftRejected(t *testing.T) {
	f := newFixture(t, "10.00")

	err := perform(t, f.store, &CreateTransaction{
		AccountID:   f.accountID,
		CategoryID:  f.expenseID,
		Amount:      money(t, "10.01"),
		Description: "one cent too many",
	})

	var insufficientErr *InsufficientFundsError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, f.accountID, insufficientErr.AccountID)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "10.00")))
}

func TestCreateTransaction_MissingAccount(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &CreateTransaction{
		AccountID:   uuid.Must(uuid.NewV4()),
		CategoryID:  f.expenseID,
		Amount:      money(t, "5.00"),
		Description: "nowhere",
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "account", notFoundErr.Entity)
}

func TestCreateTransaction_MissingCategory(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &CreateTransaction{
		AccountID:   f.accountID,
		CategoryID:  uuid.Must(uuid.NewV4()),
		Amount:      money(t, "5.00"),
		Description: "nowhere",
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "category", notFoundErr.Entity)
}

func TestCreateTransaction_CrossUserCategoryConflict(t *testing.T) {
	f := newFixture(t, "100.00")

	other := newOtherUserCategory(t, f)

	err := perform(t, f.store, &CreateTransaction{
		AccountID:   f.accountID,
		CategoryID:  other,
		Amount:      money(t, "5.00"),
		Description: "not yours",
	})

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
}

func TestCreateTransaction_DefaultsDateToNow(t *testing.T) {
	f := newFixture(t, "100.00")

	action := &CreateTransaction{
		AccountID:   f.accountID,
		CategoryID:  f.incomeID,
		Amount:      money(t, "1.00"),
		Description: "undated",
	}
	require.NoError(t, perform(t, f.store, action))

	assert.WithinDuration(t, time.Now(), action.Created.TransactionDate, time.Minute)
}

// newOtherUserCategory seeds a second user with one expense category.
func newOtherUserCategory(t *testing.T, f *fixture) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	writer, err := f.store.Write(ctx)
	require.NoError(t, err)
	otherUser, err := writer.Users.Insert(ctx, &user.UserCreate{
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	catID, err := writer.Categories.Insert(ctx, &category.CategoryCreate{
		UserID: otherUser,
		Name:   "Rent",
		Type:   category.PolarityExpense,
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit())
	return catID
}
