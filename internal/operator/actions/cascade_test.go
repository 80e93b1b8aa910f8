package actions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteAccount_RemovesTransactionsAndAccount(t *testing.T) {
	f := newFixture(t, "100.00")
	txID := f.createTransaction(t, f.expenseID, "30.00", time.Now())

	require.NoError(t, perform(t, f.store, &DeleteAccount{AccountID: f.accountID}))

	acct, err := f.store.Reader().Accounts.FindByID(context.Background(), f.accountID)
	require.NoError(t, err)
	assert.Nil(t, acct)

	tx, err := f.store.Reader().Transactions.FindByID(context.Background(), txID)
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestDeleteAccount_CounterpartyCannotCoverReversal(t *testing.T) {
	// Checking sent 30 to savings, savings spent down to 20. Deleting
	// checking would ask savings to give 30 back, which it cannot do.
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "0.00")
	f.createTransfer(t, f.accountID, savingsID, "30.00")

	writer, err := f.store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.UpdateBalance(context.Background(), savingsID, money(t, "20.00")))
	require.NoError(t, writer.Commit())

	err = perform(t, f.store, &DeleteAccount{AccountID: f.accountID})

	var cannotDeleteErr *CannotDeleteError
	require.ErrorAs(t, err, &cannotDeleteErr)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "70.00")))
	assert.True(t, f.balance(t, savingsID).Equal(money(t, "20.00")))
}

func TestDeleteAccount_CounterpartyReversalApplied(t *testing.T) {
	// Same shape, but savings grew to 40: the reversal leaves it at 10.
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "0.00")
	f.createTransfer(t, f.accountID, savingsID, "30.00")

	writer, err := f.store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.UpdateBalance(context.Background(), savingsID, money(t, "40.00")))
	require.NoError(t, writer.Commit())

	require.NoError(t, perform(t, f.store, &DeleteAccount{AccountID: f.accountID}))

	assert.True(t, f.balance(t, savingsID).Equal(money(t, "10.00")))

	acct, err := f.store.Reader().Accounts.FindByID(context.Background(), f.accountID)
	require.NoError(t, err)
	assert.Nil(t, acct)
}

func TestDeleteAccount_IncomingTransferRefundsSource(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "0.00")
	f.createTransfer(t, f.accountID, savingsID, "30.00")

	// Deleting the destination returns the 30 to checking.
	require.NoError(t, perform(t, f.store, &DeleteAccount{AccountID: savingsID}))

	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
}

func TestDeleteCategory_LeavesBalancesAlone(t *testing.T) {
	f := newFixture(t, "100.00")
	txID := f.createTransaction(t, f.expenseID, "30.00", time.Now())
	budgetID := f.addBudget(t, f.expenseID, "100.00", janStart, janEnd)

	require.NoError(t, perform(t, f.store, &DeleteCategory{CategoryID: f.expenseID}))

	// History is gone, money stays where it went.
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "70.00")))

	tx, err := f.store.Reader().Transactions.FindByID(context.Background(), txID)
	require.NoError(t, err)
	assert.Nil(t, tx)

	b, err := f.store.Reader().Budgets.FindByID(context.Background(), budgetID)
	require.NoError(t, err)
	assert.Nil(t, b)

	cat, err := f.store.Reader().Categories.FindByID(context.Background(), f.expenseID)
	require.NoError(t, err)
	assert.Nil(t, cat)
}

func TestDeleteUser_FullCascade(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "50.00")
	f.createTransfer(t, f.accountID, savingsID, "20.00")
	f.createTransaction(t, f.expenseID, "10.00", time.Now())
	f.addBudget(t, f.expenseID, "100.00", janStart, janEnd)

	require.NoError(t, perform(t, f.store, &DeleteUser{UserID: f.userID}))

	reader := f.store.Reader()
	u, err := reader.Users.FindByID(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Nil(t, u)

	acct, err := reader.Accounts.FindByID(context.Background(), f.accountID)
	require.NoError(t, err)
	assert.Nil(t, acct)
	savings, err := reader.Accounts.FindByID(context.Background(), savingsID)
	require.NoError(t, err)
	assert.Nil(t, savings)
	cat, err := reader.Categories.FindByID(context.Background(), f.expenseID)
	require.NoError(t, err)
	assert.Nil(t, cat)
}

func TestDeleteUser_OtherUsersUntouched(t *testing.T) {
	f := newFixture(t, "100.00")
	otherCat := newOtherUserCategory(t, f)

	require.NoError(t, perform(t, f.store, &DeleteUser{UserID: f.userID}))

	cat, err := f.store.Reader().Categories.FindByID(context.Background(), otherCat)
	require.NoError(t, err)
	require.NotNil(t, cat)
}
