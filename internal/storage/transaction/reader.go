package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"transaction_id", "account_id", "category_id", "amount", "description", "transaction_date", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a transaction by primary key. Returns nil when absent.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("transaction_id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "transaction.FindByID")
	}
	return &row, nil
}

// List returns transactions matching the filter. Nil filter returns all.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("transactions"),
	}
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.DateFrom != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(*filter.DateFrom))))
		}
		if filter.DateTo != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(*filter.DateTo))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
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
		sm.OrderBy("transaction_id").Desc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, errors.Wrap(err, "transaction.List")
	}
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// SumExpensesInPeriod sums the amounts of the category's transactions with
// a transaction date inside the inclusive period, excluding excludeID when
// it is non-nil. Callers only invoke this for expense categories, so no
// polarity join is needed.
func (r *Reader) SumExpensesInPeriod(ctx context.Context, categoryID uuid.UUID, periodStart, periodEnd time.Time, excludeID uuid.UUID) (decimal.Decimal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0) AS total")),
		sm.From("transactions"),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(periodStart))),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(periodEnd))),
	}
	if excludeID != uuid.Nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("transaction_id").NE(psql.Arg(excludeID))))
	}

	total, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "transaction.SumExpensesInPeriod")
	}
	return total, nil
}

// CategoryTotals aggregates transaction amount and count per category.
func (r *Reader) CategoryTotals(ctx context.Context) ([]*CategoryTotal, error) {
	q := psql.Select(
		sm.Columns(
			psql.Quote("c", "name"),
			psql.Quote("c", "type"),
			psql.Raw("SUM(t.amount) AS total_amount"),
			psql.Raw("COUNT(t.transaction_id) AS transaction_count"),
		),
		sm.From("categories").As("c"),
		sm.InnerJoin("transactions").As("t").On(
			psql.Quote("t", "category_id").EQ(psql.Quote("c", "category_id")),
		),
		sm.GroupBy(psql.Quote("c", "category_id")),
		sm.GroupBy(psql.Quote("c", "name")),
		sm.GroupBy(psql.Quote("c", "type")),
		sm.OrderBy(psql.Quote("c", "name")).Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[CategoryTotal]())
	if err != nil {
		return nil, errors.Wrap(err, "transaction.CategoryTotals")
	}
	result := make([]*CategoryTotal, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
