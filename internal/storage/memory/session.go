package memory

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// session is the memory store's unit of work. Mutations apply to the
// shared maps immediately and push an inverse operation onto the undo log;
// Rollback replays the log in reverse, Commit discards it. Row locks taken
// through lockRow are held until the session ends.
type session struct {
	s    *Store
	held map[uuid.UUID]bool
	undo []func()
	done bool
}

var _ storage.Tx = (*session)(nil)

func newSession(s *Store) *session {
	return &session{
		s:    s,
		held: make(map[uuid.UUID]bool),
	}
}

// lockRow acquires the exclusive row lock, waiting at most the store's
// lock wait. Reacquiring a lock already held by this session is a no-op.
func (ss *session) lockRow(ctx context.Context, id uuid.UUID) error {
	if ss.held[id] {
		return nil
	}
	ch := ss.s.lockChan(id)

	timer := time.NewTimer(ss.s.lockWait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		ss.held[id] = true
		return nil
	case <-timer.C:
		return storage.ErrBusy
	case <-ctx.Done():
		return ctx.Err()
	}
}

// onRollback records an inverse operation. It runs under the store mutex
// when the session rolls back.
func (ss *session) onRollback(f func()) {
	ss.undo = append(ss.undo, f)
}

func (ss *session) Commit(context.Context) error {
	if ss.done {
		return nil
	}
	ss.done = true
	ss.undo = nil
	ss.releaseLocks()
	return nil
}

func (ss *session) Rollback(context.Context) error {
	if ss.done {
		return nil
	}
	ss.done = true

	ss.s.mu.Lock()
	for i := len(ss.undo) - 1; i >= 0; i-- {
		ss.undo[i]()
	}
	ss.s.mu.Unlock()
	ss.undo = nil

	ss.releaseLocks()
	return nil
}

func (ss *session) releaseLocks() {
	for id := range ss.held {
		<-ss.s.lockChan(id)
	}
	ss.held = nil
}
