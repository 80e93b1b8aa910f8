package actions

import (
	"bytes"
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/category"
)

// orderedAccountIDs deduplicates the ids and sorts them into the global
// lock order: ascending UUID byte value. Every action that locks more than
// one account goes through this, so two operations referencing the same
// accounts in opposite roles always acquire locks in the same order.
// The zero UUID is kept: no account row carries it, so looking it up
// surfaces NotFoundError instead of silently locking nothing.
func orderedAccountIDs(ids ...uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	ordered := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i][:], ordered[j][:]) < 0
	})
	return ordered
}

// lockAccounts loads the given accounts exclusively, in the global lock
// order. A missing account aborts with NotFoundError after the locks taken
// so far are left to the writer's rollback.
func lockAccounts(ctx context.Context, writer *storage.Writer, ids ...uuid.UUID) (map[uuid.UUID]*account.Account, error) {
	locked := make(map[uuid.UUID]*account.Account, len(ids))
	for _, id := range orderedAccountIDs(ids...) {
		row, err := writer.Accounts.FindByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, &NotFoundError{Entity: "account"}
		}
		locked[id] = row
	}
	return locked, nil
}

// signedEffect is the delta a transaction applies to its account balance:
// +amount for income categories, -amount for expense categories.
func signedEffect(polarity category.Polarity, amount decimal.Decimal) decimal.Decimal {
	if polarity == category.PolarityExpense {
		return amount.Neg()
	}
	return amount
}
