package transfer

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

var _ ITransferTable = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new transfer and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransferCreate) (uuid.UUID, error) {
	cols := []string{"account_id_from", "account_id_to", "amount", "description"}
	args := []any{create.FromAccountID, create.ToAccountID, create.Amount, create.Description}
	if !create.TransactionDate.IsZero() {
		cols = append(cols, "transaction_date")
		args = append(args, create.TransactionDate)
	}
	q := psql.Insert(
		im.Into("transfers", cols...),
		im.Values(psql.Arg(args...)),
		im.Returning("transfer_id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "transfer.Insert")
	}
	return id, nil
}

// Update changes the set columns of the transfer row.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, setter *TransferSetter) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transfers"),
		um.Where(psql.Quote("transfer_id").EQ(psql.Arg(id))),
	}
	if v, ok := setter.FromAccountID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("account_id_from").ToArg(v))
	}
	if v, ok := setter.ToAccountID.Get(); ok {
		queryMods = append(queryMods, um.SetCol("account_id_to").ToArg(v))
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
	return errors.Wrap(err, "transfer.Update")
}

// Delete removes the transfer row.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("transfers"),
		dm.Where(psql.Quote("transfer_id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return errors.Wrap(err, "transfer.Delete")
}
