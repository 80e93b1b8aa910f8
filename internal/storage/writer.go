package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// Tx is the unit-of-work handle behind a Writer. bob.Tx satisfies it for
// the SQL store; the memory store brings its own.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer is one all-or-nothing unit of work. Every mutation performed
// through it either commits as a whole or leaves no trace.
type Writer struct {
	tx           Tx
	Users        user.IUserTable
	Accounts     account.IAccountTable
	Categories   category.ICategoryTable
	Transactions transaction.ITransactionTable
	Transfers    transfer.ITransferTable
	Budgets      budget.IBudgetTable
}

// NewWriter builds a SQL-backed writer over an open transaction.
func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Users:        user.NewWriter(tx),
		Accounts:     account.NewWriter(tx),
		Categories:   category.NewWriter(tx),
		Transactions: transaction.NewWriter(tx),
		Transfers:    transfer.NewWriter(tx),
		Budgets:      budget.NewWriter(tx),
	}
}

// Tables groups the table implementations for WrapWriter.
type Tables struct {
	Users        user.IUserTable
	Accounts     account.IAccountTable
	Categories   category.ICategoryTable
	Transactions transaction.ITransactionTable
	Transfers    transfer.ITransferTable
	Budgets      budget.IBudgetTable
}

// WrapWriter builds a writer over any Tx and table set. Used by the memory
// store.
func WrapWriter(tx Tx, tables Tables) *Writer {
	return &Writer{
		tx:           tx,
		Users:        tables.Users,
		Accounts:     tables.Accounts,
		Categories:   tables.Categories,
		Transactions: tables.Transactions,
		Transfers:    tables.Transfers,
		Budgets:      tables.Budgets,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
