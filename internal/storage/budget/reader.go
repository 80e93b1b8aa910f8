package budget

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"budget_id", "user_id", "category_id", "amount_limit", "period_start", "period_end"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a budget by primary key. Returns nil when absent.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("budget_id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Budget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "budget.FindByID")
	}
	return &row, nil
}

// ListByUser returns every budget owned by the given user.
func (r *Reader) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("period_start").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Budget]())
	if err != nil {
		return nil, errors.Wrap(err, "budget.ListByUser")
	}
	result := make([]*Budget, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// ListContaining returns every budget of the category whose inclusive
// period contains the given date.
func (r *Reader) ListContaining(ctx context.Context, categoryID uuid.UUID, date time.Time) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("period_start").LTE(psql.Arg(date))),
		sm.Where(psql.Quote("period_end").GTE(psql.Arg(date))),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Budget]())
	if err != nil {
		return nil, errors.Wrap(err, "budget.ListContaining")
	}
	result := make([]*Budget, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
