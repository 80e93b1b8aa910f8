package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/user"
)

// errReadOnly is returned when a mutation is attempted outside a writer.
var errReadOnly = errors.New("memory: mutation outside a write session")

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// -- users --

type userTable struct {
	s  *Store
	ss *session
}

var _ user.IUserTable = (*userTable)(nil)

func (t *userTable) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	row, ok := t.s.users[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (t *userTable) List(_ context.Context) ([]*user.User, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	result := make([]*user.User, 0, len(t.s.users))
	for id := range t.s.users {
		row := t.s.users[id]
		result = append(result, &row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (t *userTable) Insert(_ context.Context, create *user.UserCreate) (uuid.UUID, error) {
	if t.ss == nil {
		return uuid.Nil, errReadOnly
	}
	id := newID()
	row := user.User{
		ID:           id,
		Username:     create.Username,
		Email:        create.Email,
		PasswordHash: create.PasswordHash,
		CreatedAt:    time.Now(),
	}

	t.s.mu.Lock()
	t.s.users[id] = row
	t.s.mu.Unlock()

	t.ss.onRollback(func() { delete(t.s.users, id) })
	return id, nil
}

func (t *userTable) Delete(_ context.Context, id uuid.UUID) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.users[id]
	delete(t.s.users, id)
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.users[id] = prev })
	}
	return nil
}

// -- accounts --

type accountTable struct {
	s  *Store
	ss *session
}

var _ account.IAccountTable = (*accountTable)(nil)

func (t *accountTable) FindByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	row, ok := t.s.accounts[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

// FindByIDForUpdate takes the row lock before reading. The lock is held
// until the session commits or rolls back, matching SELECT ... FOR UPDATE.
func (t *accountTable) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if t.ss == nil {
		return nil, errReadOnly
	}
	if err := t.ss.lockRow(ctx, id); err != nil {
		return nil, err
	}
	return t.FindByID(ctx, id)
}

func (t *accountTable) List(_ context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	result := make([]*account.Account, 0, len(t.s.accounts))
	for id := range t.s.accounts {
		row := t.s.accounts[id]
		if filter != nil && filter.UserID != nil && row.UserID != *filter.UserID {
			continue
		}
		result = append(result, &row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return lessID(result[i].ID, result[j].ID)
	})
	limit, offset := 0, 0
	if filter != nil {
		limit, offset = filter.Limit, filter.Offset
	}
	return page(result, limit, offset), nil
}

func (t *accountTable) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	return t.List(ctx, &account.AccountFilter{UserID: &userID})
}

func (t *accountTable) Insert(_ context.Context, create *account.AccountCreate) (uuid.UUID, error) {
	if t.ss == nil {
		return uuid.Nil, errReadOnly
	}
	id := newID()
	row := account.Account{
		ID:              id,
		UserID:          create.UserID,
		Name:            create.Name,
		Type:            create.Type,
		Balance:         create.StartingBalance,
		StartingBalance: create.StartingBalance,
		CreatedAt:       time.Now(),
	}

	t.s.mu.Lock()
	t.s.accounts[id] = row
	t.s.mu.Unlock()

	t.ss.onRollback(func() { delete(t.s.accounts, id) })
	return id, nil
}

func (t *accountTable) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.accounts[id]
	if ok {
		row := prev
		row.Balance = balance
		t.s.accounts[id] = row
	}
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.accounts[id] = prev })
	}
	return nil
}

func (t *accountTable) Delete(_ context.Context, id uuid.UUID) error {
	if t.ss == nil {
		return errReadOnly
	}
	t.s.mu.Lock()
	prev, ok := t.s.accounts[id]
	delete(t.s.accounts, id)
	t.s.mu.Unlock()

	if ok {
		t.ss.onRollback(func() { t.s.accounts[id] = prev })
	}
	return nil
}

// -- helpers --

func lessID(a, b uuid.UUID) bool {
	return bytesCompare(a, b) < 0
}

func bytesCompare(a, b uuid.UUID) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// page mirrors the SQL readers: offset first, then up to limit+1 rows so
// callers can detect a next page.
func page[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && len(rows) > limit+1 {
		rows = rows[:limit+1]
	}
	return rows
}
