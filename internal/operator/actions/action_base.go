package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// IAction is one mutating operation executed inside a single writer.
// Perform must either complete every mutation or return an error having
// touched nothing the rollback cannot undo.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// ChangeSet collects audit change records during Perform. The operator
// hands them to the audit sink after the writer commits; a failed action's
// records are discarded with the rollback.
type ChangeSet struct {
	changes []audit.Change
}

// Record notes one row mutation for the audit trail.
func (c *ChangeSet) Record(table string, recordID uuid.UUID, action string, before, after interface{}) {
	c.changes = append(c.changes, audit.Change{
		Table:    table,
		RecordID: recordID.String(),
		Action:   action,
		Before:   before,
		After:    after,
		At:       time.Now(),
	})
}

// Changes returns the recorded changes in order.
func (c *ChangeSet) Changes() []audit.Change {
	return c.changes
}
