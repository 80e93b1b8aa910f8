package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteAccount removes an account together with its transactions and
// transfers. Each transfer's effect on the surviving counterparty account
// is reversed; a reversal that would overdraw a counterparty refuses the
// whole deletion.
type DeleteAccount struct {
	AccountID uuid.UUID

	ChangeSet
}

func (a *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	return deleteAccountCascade(ctx, writer, a.AccountID, &a.ChangeSet)
}

// deleteAccountCascade is shared with user deletion, which removes every
// account the user owns through the same path.
func deleteAccountCascade(ctx context.Context, writer *storage.Writer, accountID uuid.UUID, cs *ChangeSet) error {
	transfers, err := writer.Transfers.ListByAccount(ctx, accountID)
	if err != nil {
		return err
	}

	ids := []uuid.UUID{accountID}
	for _, t := range transfers {
		ids = append(ids, t.FromAccountID, t.ToAccountID)
	}
	accounts, err := lockAccounts(ctx, writer, ids...)
	if err != nil {
		return err
	}
	acct := accounts[accountID]

	// Reverse each transfer on the surviving side. Balances accumulate
	// across the sequence, so an early reversal can fund a later one.
	balances := map[uuid.UUID]decimal.Decimal{}
	for id, row := range accounts {
		balances[id] = row.Balance
	}
	for _, t := range transfers {
		if t.ToAccountID == accountID {
			// Funds return to the surviving source account.
			balances[t.FromAccountID] = balances[t.FromAccountID].Add(t.Amount)
		} else {
			// The surviving destination gives the funds back.
			final := balances[t.ToAccountID].Sub(t.Amount)
			if final.Sign() < 0 {
				return cannotDeletef("deleting account %s would overdraw account %s", accountID, t.ToAccountID)
			}
			balances[t.ToAccountID] = final
		}
	}

	for _, t := range transfers {
		if err := writer.Transfers.Delete(ctx, t.ID); err != nil {
			return err
		}
		cs.Record("transfers", t.ID, audit.ActionDelete, t, nil)
	}
	for id, final := range balances {
		if id == accountID {
			continue
		}
		if final.Equal(accounts[id].Balance) {
			continue
		}
		if err := writer.Accounts.UpdateBalance(ctx, id, final); err != nil {
			return err
		}
	}

	if _, err := writer.Transactions.DeleteByAccount(ctx, accountID); err != nil {
		return err
	}
	if err := writer.Accounts.Delete(ctx, accountID); err != nil {
		return err
	}

	cs.Record("accounts", accountID, audit.ActionDelete, acct, nil)
	return nil
}
