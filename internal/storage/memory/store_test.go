package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

func seedAccount(t *testing.T, store *Store, balance string) (userID, accountID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	writer, err := store.Write(ctx)
	require.NoError(t, err)

	uID, err := writer.Users.Insert(ctx, &user.UserCreate{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	aID, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		UserID:          uID,
		Name:            "Checking",
		Type:            account.AccountTypeCash,
		StartingBalance: decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	require.NoError(t, writer.Commit())
	return uID, aID
}

func TestRollback_UndoesInsert(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	id, err := writer.Users.Insert(ctx, &user.UserCreate{
		Username:     "ghost",
		Email:        "ghost@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	require.NoError(t, writer.Rollback())

	row, err := store.Reader().Users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestRollback_UndoesBalanceUpdate(t *testing.T) {
	store := NewStore()
	_, accountID := seedAccount(t, store, "100.00")
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.UpdateBalance(ctx, accountID, decimal.RequireFromString("5.00")))
	require.NoError(t, writer.Rollback())

	row, err := store.Reader().Accounts.FindByID(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Balance.Equal(decimal.RequireFromString("100.00")))
}

func TestRollback_UndoesDelete(t *testing.T) {
	store := NewStore()
	_, accountID := seedAccount(t, store, "100.00")
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.Delete(ctx, accountID))
	require.NoError(t, writer.Rollback())

	row, err := store.Reader().Accounts.FindByID(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, row)
}

func TestRollback_ReplaysInReverseOrder(t *testing.T) {
	store := NewStore()
	_, accountID := seedAccount(t, store, "100.00")
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	require.NoError(t, writer.Accounts.UpdateBalance(ctx, accountID, decimal.RequireFromString("50.00")))
	require.NoError(t, writer.Accounts.Delete(ctx, accountID))
	require.NoError(t, writer.Rollback())

	row, err := store.Reader().Accounts.FindByID(ctx, accountID)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.True(t, row.Balance.Equal(decimal.RequireFromString("100.00")))
}

func TestLockRow_ReentrantWithinSession(t *testing.T) {
	store := NewStoreWithLockWait(50 * time.Millisecond)
	_, accountID := seedAccount(t, store, "100.00")
	ctx := context.Background()

	writer, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = writer.Accounts.FindByIDForUpdate(ctx, accountID)
	require.NoError(t, err)

	// Same session, same row: no self-deadlock.
	_, err = writer.Accounts.FindByIDForUpdate(ctx, accountID)
	require.NoError(t, err)
	require.NoError(t, writer.Commit())
}

func TestLockRow_ContendedReturnsBusy(t *testing.T) {
	store := NewStoreWithLockWait(50 * time.Millisecond)
	_, accountID := seedAccount(t, store, "100.00")
	ctx := context.Background()

	holder, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = holder.Accounts.FindByIDForUpdate(ctx, accountID)
	require.NoError(t, err)

	blocked, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = blocked.Accounts.FindByIDForUpdate(ctx, accountID)
	assert.ErrorIs(t, err, storage.ErrBusy)
	require.NoError(t, blocked.Rollback())
	require.NoError(t, holder.Commit())
}

func TestLockRow_CommitReleasesLock(t *testing.T) {
	store := NewStoreWithLockWait(50 * time.Millisecond)
	_, accountID := seedAccount(t, store, "100.00")
	ctx := context.Background()

	first, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = first.Accounts.FindByIDForUpdate(ctx, accountID)
	require.NoError(t, err)
	require.NoError(t, first.Commit())

	second, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = second.Accounts.FindByIDForUpdate(ctx, accountID)
	require.NoError(t, err)
	require.NoError(t, second.Commit())
}

func TestLockRow_RollbackReleasesLock(t *testing.T) {
	store := NewStoreWithLockWait(50 * time.Millisecond)
	_, accountID := seedAccount(t, store, "100.00")
	ctx := context.Background()

	first, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = first.Accounts.FindByIDForUpdate(ctx, accountID)
	require.NoError(t, err)
	require.NoError(t, first.Rollback())

	second, err := store.Write(ctx)
	require.NoError(t, err)
	_, err = second.Accounts.FindByIDForUpdate(ctx, accountID)
	require.NoError(t, err)
	require.NoError(t, second.Commit())
}

func TestFindByID_MissingRowIsNilNil(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	row, err := store.Reader().Accounts.FindByID(ctx, uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	assert.Nil(t, row)
}
