package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

var _ ITransactionTable = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	cols := []string{"account_id", "category_id", "amount", "description"}
	args := []any{create.AccountID, create.CategoryID, create.Amount, create.Description}
	if !create.TransactionDate.IsZero() {
		cols = append(cols, "transaction_date")
		args = append(args, create.TransactionDate)
	}
	q := psql.Insert(
		im.Into("transactions", cols...),
		im.Values(psql.Arg(args...)),
		im.Returning("transaction_id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "transaction.Insert")
	}
	return id, nil
}

// Update changes the set columns of the transaction row.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, setter *TransactionSetter) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
		um.Where(psql.Quote("transaction_id").EQ(psql.Arg(id))),
	}
	if v, ok := setter.AccountID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("account_id").ToArg(v))
	}
	if v, ok := setter.CategoryID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("category_id").ToArg(v))
	}
	if v, ok := setter.Amount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("amount").ToArg(v))
	}
	if v, ok := setter.Description.Get(); ok {
		queryMods = append(queryMods, um.SetCol("description").ToArg(v))
	}
	if v, ok := setter.TransactionDate.Get(); ok {
		queryMods = append(queryMods, um.SetCol("transaction_date").ToArg(v))
	}

	_, err := bob.Exec(ctx, w.tx, psql.Update(queryMods...))
	return errors.Wrap(err, "transaction.Update")
}

// Delete removes the transaction row.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("transaction_id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return errors.Wrap(err, "transaction.Delete")
}

// DeleteByAccount bulk-removes every transaction on the account and returns
// the number of removed rows.
func (w *Writer) DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, errors.Wrap(err, "transaction.DeleteByAccount")
	}
	return res.RowsAffected()
}

// DeleteByCategory bulk-removes every transaction in the category and
// returns the number of removed rows.
func (w *Writer) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, errors.Wrap(err, "transaction.DeleteByCategory")
	}
	return res.RowsAffected()
}
