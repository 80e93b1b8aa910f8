package actions

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The zero UUID passes format validation upstream but never identifies an
// account row. Every action that locks accounts must treat it like any
// other unknown ID and fail with NotFoundError rather than proceed with a
// missing row.

func TestCreateTransaction_ZeroAccountID(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &CreateTransaction{
		AccountID:   uuid.Nil,
		CategoryID:  f.expenseID,
		Amount:      money(t, "5.00"),
		Description: "nowhere",
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "account", notFoundErr.Entity)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
}

func TestCreateTransfer_ZeroEndpoint(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &CreateTransfer{
		FromAccountID: uuid.Nil,
		ToAccountID:   f.accountID,
		Amount:        money(t, "5.00"),
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "account", notFoundErr.Entity)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
}

func TestUpdateTransaction_ZeroAccountID(t *testing.T) {
	f := newFixture(t, "100.00")
	txID := f.createTransaction(t, f.expenseID, "10.00", time.Now())

	err := perform(t, f.store, &UpdateTransaction{
		TransactionID: txID,
		AccountID:     uuid.Nil,
		CategoryID:    f.expenseID,
		Amount:        money(t, "20.00"),
		Description:   "moved to nowhere",
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "account", notFoundErr.Entity)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "90.00")))
}

func TestUpdateTransfer_ZeroEndpoint(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "50.00")
	transferID := f.createTransfer(t, f.accountID, savingsID, "10.00")

	err := perform(t, f.store, &UpdateTransfer{
		TransferID:    transferID,
		FromAccountID: f.accountID,
		ToAccountID:   uuid.Nil,
		Amount:        money(t, "10.00"),
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "account", notFoundErr.Entity)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "90.00")))
	assert.True(t, f.balance(t, savingsID).Equal(money(t, "60.00")))
}

func TestDeleteAccount_ZeroAccountID(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &DeleteAccount{AccountID: uuid.Nil})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "account", notFoundErr.Entity)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
}
