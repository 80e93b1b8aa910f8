package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// Reader bundles the read-side table views. Reads run in autocommit mode
// and never touch balances.
type Reader struct {
	Users        user.IUserReader
	Accounts     account.IAccountReader
	Categories   category.ICategoryReader
	Transactions transaction.ITransactionReader
	Transfers    transfer.ITransferReader
	Budgets      budget.IBudgetReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Users:        user.NewReader(exec),
		Accounts:     account.NewReader(exec),
		Categories:   category.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Transfers:    transfer.NewReader(exec),
		Budgets:      budget.NewReader(exec),
	}
}
