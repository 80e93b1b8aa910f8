package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
)

// Storage produces read views and transactional writers over the persisted
// ledger state.
type Storage interface {
	Reader() *Reader
	Write(ctx context.Context) (*Writer, error)
	Close() error
}

// lockTimeout bounds how long a writer waits for a row lock before the
// operation fails with ErrBusy.
const lockTimeout = "3s"

// SQL is the Postgres-backed Storage.
type SQL struct {
	raw    *sql.DB
	db     bob.DB
	reader *Reader
}

var _ Storage = (*SQL)(nil)

func NewStorage(env *config.Config) (*SQL, error) {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "storage.NewStorage")
	}

	bobDB := bob.NewDB(db)
	return &SQL{
		raw:    db,
		db:     bobDB,
		reader: NewReader(bobDB),
	}, nil
}

func (s *SQL) Reader() *Reader {
	return s.reader
}

// Write opens a transaction with a bounded lock wait. Row locks taken via
// FindByIDForUpdate that exceed the wait surface as ErrBusy through the
// table layer.
func (s *SQL) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "storage.Write.begin")
	}

	if _, err := tx.ExecContext(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		_ = tx.Rollback(ctx)
		return nil, errors.Wrap(err, "storage.Write.lock_timeout")
	}

	return NewWriter(tx), nil
}

func (s *SQL) Close() error {
	return s.raw.Close()
}
