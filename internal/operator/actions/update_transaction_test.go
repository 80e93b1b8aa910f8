package actions

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTransaction_SameAccountAmountChange(t *testing.T) {
	f := newFixture(t, "100.00")
	id := f.createTransaction(t, f.expenseID, "30.00", time.Now())

	require.NoError(t, perform(t, f.store, &UpdateTransaction{
		TransactionID: id,
		AccountID:     f.accountID,
		CategoryID:    f.expenseID,
		Amount:        money(t, "45.00"),
		Description:   "bigger",
	}))

	// 100 - 30, then +30 back and -45: 55.
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "55.00")))
}

func TestUpdateTransaction_CombinedCheckNotSpuriouslyRejected(t *testing.T) {
	// Income of 100 on a zero-balance account, edited down to 90. The naive
	// reverse-then-apply order would briefly see -100; the combined check
	// only cares about the final balance.
	f := newFixture(t, "0.00")
	id := f.createTransaction(t, f.incomeID, "100.00", time.Now())

	require.NoError(t, perform(t, f.store, &UpdateTransaction{
		TransactionID: id,
		AccountID:     f.accountID,
		CategoryID:    f.incomeID,
		Amount:        money(t, "90.00"),
		Description:   "corrected",
	}))

	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "90.00")))
}

func TestUpdateTransaction_IncomeReductionBelowSpentRejected(t *testing.T) {
	f := newFixture(t, "0.00")
	id := f.createTransaction(t, f.incomeID, "100.00", time.Now())
	f.createTransaction(t, f.expenseID, "80.00", time.Now())

	// Only 20 remains, so shrinking the income to 10 would leave -10.
	err := perform(t, f.store, &UpdateTransaction{
		TransactionID: id,
		AccountID:     f.accountID,
		CategoryID:    f.incomeID,
		Amount:        money(t, "10.00"),
		Description:   "too small",
	})

	var insufficientErr *InsufficientFundsError
	require.ErrorAs(t, err, &insufficientErr)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "20.00")))
}

func TestUpdateTransaction_MoveBetweenAccounts(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "50.00")
	id := f.createTransaction(t, f.expenseID, "30.00", time.Now())

	require.NoError(t, perform(t, f.store, &UpdateTransaction{
		TransactionID: id,
		AccountID:     savingsID,
		CategoryID:    f.expenseID,
		Amount:        money(t, "30.00"),
		Description:   "moved",
	}))

	// The old account gets its 30 back; the new account pays it.
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
	assert.True(t, f.balance(t, savingsID).Equal(money(t, "20.00")))
}

func TestUpdateTransaction_MoveRejectedWhenNewAccountCannotCover(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "10.00")
	id := f.createTransaction(t, f.expenseID, "30.00", time.Now())

	err := perform(t, f.store, &UpdateTransaction{
		TransactionID: id,
		AccountID:     savingsID,
		CategoryID:    f.expenseID,
		Amount:        money(t, "30.00"),
		Description:   "moved",
	})

	var insufficientErr *InsufficientFundsError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, savingsID, insufficientErr.AccountID)
	// All or nothing: neither balance moved.
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "70.00")))
	assert.True(t, f.balance(t, savingsID).Equal(money(t, "10.00")))
}

func TestUpdateTransaction_BudgetExcludesOwnOldAmount(t *testing.T) {
	f := newFixture(t, "500.00")
	f.addBudget(t, f.expenseID, "100.00", janStart, janEnd)
	id := f.createTransaction(t, f.expenseID, "90.00", janStart.AddDate(0, 0, 5))

	// 90 -> 95 fits because the old 90 no longer counts against the cap.
	require.NoError(t, perform(t, f.store, &UpdateTransaction{
		TransactionID:   id,
		AccountID:       f.accountID,
		CategoryID:      f.expenseID,
		Amount:          money(t, "95.00"),
		Description:     "bumped",
		TransactionDate: janStart.AddDate(0, 0, 5),
	}))

	// But not past the cap.
	err := perform(t, f.store, &UpdateTransaction{
		TransactionID:   id,
		AccountID:       f.accountID,
		CategoryID:      f.expenseID,
		Amount:          money(t, "100.01"),
		Description:     "too far",
		TransactionDate: janStart.AddDate(0, 0, 5),
	})
	var budgetErr *BudgetExceededError
	require.ErrorAs(t, err, &budgetErr)
}

func TestUpdateTransaction_MissingTransaction(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &UpdateTransaction{
		TransactionID: uuid.Must(uuid.NewV4()),
		AccountID:     f.accountID,
		CategoryID:    f.expenseID,
		Amount:        money(t, "5.00"),
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "transaction", notFoundErr.Entity)
}
