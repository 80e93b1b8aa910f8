package user

import (
	"context"
	"database/sql"

	"github.com/gofrs/uuid/v5"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"user_id", "username", "email", "password_hash", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves a user by primary key. Returns nil when absent.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[User]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "user.FindByID")
	}
	return &row, nil
}

// List returns all users ordered by username.
func (r *Reader) List(ctx context.Context) ([]*User, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("users"),
		sm.OrderBy("username").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[User]())
	if err != nil {
		return nil, errors.Wrap(err, "user.List")
	}
	result := make([]*User, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
