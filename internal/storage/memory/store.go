// Package memory is an in-memory Storage used by tests and DB-less runs.
// It honors the same contracts as the SQL store: per-account exclusive row
// locks with a bounded wait, and all-or-nothing writers backed by an undo
// log.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
	"github.com/carson-networks/ledger-server/internal/storage/transfer"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

const defaultLockWait = 3 * time.Second

type Store struct {
	mu sync.Mutex

	users        map[uuid.UUID]user.User
	accounts     map[uuid.UUID]account.Account
	categories   map[uuid.UUID]category.Category
	transactions map[uuid.UUID]transaction.Transaction
	transfers    map[uuid.UUID]transfer.Transfer
	budgets      map[uuid.UUID]budget.Budget

	locks    map[uuid.UUID]chan struct{}
	lockWait time.Duration
}

var _ storage.Storage = (*Store)(nil)

func NewStore() *Store {
	return NewStoreWithLockWait(defaultLockWait)
}

// NewStoreWithLockWait builds a store with a custom bound on row lock
// waits. Tests use short waits to exercise the busy path.
func NewStoreWithLockWait(lockWait time.Duration) *Store {
	return &Store{
		users:        make(map[uuid.UUID]user.User),
		accounts:     make(map[uuid.UUID]account.Account),
		categories:   make(map[uuid.UUID]category.Category),
		transactions: make(map[uuid.UUID]transaction.Transaction),
		transfers:    make(map[uuid.UUID]transfer.Transfer),
		budgets:      make(map[uuid.UUID]budget.Budget),
		locks:        make(map[uuid.UUID]chan struct{}),
		lockWait:     lockWait,
	}
}

func (s *Store) Reader() *storage.Reader {
	return &storage.Reader{
		Users:        &userTable{s: s},
		Accounts:     &accountTable{s: s},
		Categories:   &categoryTable{s: s},
		Transactions: &transactionTable{s: s},
		Transfers:    &transferTable{s: s},
		Budgets:      &budgetTable{s: s},
	}
}

func (s *Store) Write(_ context.Context) (*storage.Writer, error) {
	ss := newSession(s)
	return storage.WrapWriter(ss, storage.Tables{
		Users:        &userTable{s: s, ss: ss},
		Accounts:     &accountTable{s: s, ss: ss},
		Categories:   &categoryTable{s: s, ss: ss},
		Transactions: &transactionTable{s: s, ss: ss},
		Transfers:    &transferTable{s: s, ss: ss},
		Budgets:      &budgetTable{s: s, ss: ss},
	}), nil
}

func (s *Store) Close() error {
	return nil
}

// lockChan returns the lock channel for a row, creating it on first use.
func (s *Store) lockChan(id uuid.UUID) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[id] = ch
	}
	return ch
}
