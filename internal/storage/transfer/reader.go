package transfer

import (
	"context"
	"database/sql"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"transfer_id", "account_id_from", "account_id_to", "amount", "description", "transaction_date", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a transfer by primary key. Returns nil when absent.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transfer, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transfers"),
		sm.Where(psql.Quote("transfer_id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Transfer]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "transfer.FindByID")
	}
	return &row, nil
}

// List returns transfers matching the filter. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("transfers"),
	}
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(
				psql.Raw("(account_id_from = ? OR account_id_to = ?)", *filter.AccountID, *filter.AccountID),
			))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("transfer_id").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Transfer]())
	if err != nil {
		return nil, errors.Wrap(err, "transfer.List")
	}
	result := make([]*Transfer, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// ListByAccount returns every transfer touching the account on either side.
func (r *Reader) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transfer, error) {
	return r.List(ctx, &TransferFilter{AccountID: &accountID})
}
