package budget

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

var _ IBudgetTable = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new budget and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("budgets", "user_id", "category_id", "amount_limit", "period_start", "period_end"),
		im.Values(psql.Arg(create.UserID, create.CategoryID, create.AmountLimit, create.PeriodStart, create.PeriodEnd)),
		im.Returning("budget_id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "budget.Insert")
	}
	return id, nil
}

// Delete removes the budget row.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("budgets"),
		dm.Where(psql.Quote("budget_id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return errors.Wrap(err, "budget.Delete")
}

// DeleteByCategory bulk-removes every budget on the category.
func (w *Writer) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("budgets"),
		dm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, errors.Wrap(err, "budget.DeleteByCategory")
	}
	return res.RowsAffected()
}

// DeleteByUser bulk-removes every budget owned by the user.
func (w *Writer) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("budgets"),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, errors.Wrap(err, "budget.DeleteByUser")
	}
	return res.RowsAffected()
}
