package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

func (f *fixture) createTransfer(t *testing.T, fromID, toID uuid.UUID, amount string) uuid.UUID {
	t.Helper()
	action := &CreateTransfer{
		FromAccountID:   fromID,
		ToAccountID:     toID,
		Amount:          money(t, amount),
		Description:     "seed",
		TransactionDate: time.Now(),
	}
	require.NoError(t, perform(t, f.store, action))
	return action.Created.ID
}

func TestCreateTransfer_ZeroSum(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "50.00")

	f.createTransfer(t, f.accountID, savingsID, "40.00")

	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "60.00")))
	assert.True(t, f.balance(t, savingsID).Equal(money(t, "90.00")))
}

func TestCreateTransfer_SelfTransferRejected(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &CreateTransfer{
		FromAccountID: f.accountID,
		ToAccountID:   f.accountID,
		Amount:        money(t, "10.00"),
	})

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
}

func TestCreateTransfer_CrossUserRejected(t *testing.T) {
	f := newFixture(t, "100.00")

	// An account belonging to a second user.
	otherCat := newOtherUserCategory(t, f)
	otherUser, err := f.store.Reader().Categories.FindByID(context.Background(), otherCat)
	require.NoError(t, err)
	writer, err := f.store.Write(context.Background())
	require.NoError(t, err)
	otherAcctID, err := writer.Accounts.Insert(context.Background(), &account.AccountCreate{
		UserID:          otherUser.UserID,
		Name:            "Bob Checking",
		Type:            account.AccountTypeCash,
		StartingBalance: money(t, "50.00"),
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit())

	err = perform(t, f.store, &CreateTransfer{
		FromAccountID: f.accountID,
		ToAccountID:   otherAcctID,
		Amount:        money(t, "10.00"),
	})

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
	assert.True(t, f.balance(t, otherAcctID).Equal(money(t, "50.00")))
}

func TestCreateTransfer_InsufficientFunds(t *testing.T) {
	f := newFixture(t, "10.00")
	savingsID := f.addAccount(t, "0.00")

	err := perform(t, f.store, &CreateTransfer{
		FromAccountID: f.accountID,
		ToAccountID:   savingsID,
		Amount:        money(t, "10.01"),
	})

	var insufficientErr *InsufficientFundsError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, f.accountID, insufficientErr.AccountID)
	assert.True(t, f.balance(t, savingsID).IsZero())
}

func TestCreateTransfer_MissingAccount(t *testing.T) {
	f := newFixture(t, "100.00")

	err := perform(t, f.store, &CreateTransfer{
		FromAccountID: f.accountID,
		ToAccountID:   uuid.Must(uuid.NewV4()),
		Amount:        money(t, "10.00"),
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestUpdateTransfer_AmountChangeSamePair(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "0.00")
	id := f.createTransfer(t, f.accountID, savingsID, "40.00")

	require.NoError(t, perform(t, f.store, &UpdateTransfer{
		TransferID:    id,
		FromAccountID: f.accountID,
		ToAccountID:   savingsID,
		Amount:        money(t, "25.00"),
	}))

	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "75.00")))
	assert.True(t, f.balance(t, savingsID).Equal(money(t, "25.00")))
}

func TestUpdateTransfer_ReallocatedAcrossFourAccounts(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "50.00")
	vacationID := f.addAccount(t, "30.00")
	emergencyID := f.addAccount(t, "0.00")

	// checking -> savings becomes vacation -> emergency.
	id := f.createTransfer(t, f.accountID, savingsID, "20.00")

	require.NoError(t, perform(t, f.store, &UpdateTransfer{
		TransferID:    id,
		FromAccountID: vacationID,
		ToAccountID:   emergencyID,
		Amount:        money(t, "15.00"),
	}))

	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
	assert.True(t, f.balance(t, savingsID).Equal(money(t, "50.00")))
	assert.True(t, f.balance(t, vacationID).Equal(money(t, "15.00")))
	assert.True(t, f.balance(t, emergencyID).Equal(money(t, "15.00")))
}

func TestUpdateTransfer_ReversalOverdrawRejected(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "0.00")
	id := f.createTransfer(t, f.accountID, savingsID, "40.00")

	// Spend the transferred funds out of savings so the reversal cannot
	// be covered.
	spendWriter, err := f.store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, spendWriter.Accounts.UpdateBalance(context.Background(), savingsID, money(t, "5.00")))
	require.NoError(t, spendWriter.Commit())

	err = perform(t, f.store, &UpdateTransfer{
		TransferID:    id,
		FromAccountID: f.accountID,
		ToAccountID:   savingsID,
		Amount:        money(t, "1.00"),
	})

	var insufficientErr *InsufficientFundsError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, savingsID, insufficientErr.AccountID)
}

func TestDeleteTransfer_RestoresBothBalances(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "50.00")
	id := f.createTransfer(t, f.accountID, savingsID, "40.00")

	require.NoError(t, perform(t, f.store, &DeleteTransfer{TransferID: id}))

	assert.True(t, f.balance(t, f.accountID).Equal(money(t, "100.00")))
	assert.True(t, f.balance(t, savingsID).Equal(money(t, "50.00")))
}

func TestDeleteTransfer_DestinationCannotCoverReversal(t *testing.T) {
	f := newFixture(t, "100.00")
	savingsID := f.addAccount(t, "0.00")
	id := f.createTransfer(t, f.accountID, savingsID, "40.00")

	// Drain the destination below the transfer amount.
	writer, err := f.store.Write(context.Background())
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.UpdateBalance(context.Background(), savingsID, money(t, "10.00")))
	require.NoError(t, writer.Commit())

	err = perform(t, f.store, &DeleteTransfer{TransferID: id})

	var cannotDeleteErr *CannotDeleteError
	require.ErrorAs(t, err, &cannotDeleteErr)

	// The transfer row survives.
	row, err := f.store.Reader().Transfers.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, row)
}
