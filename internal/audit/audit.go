// Package audit delivers change records to configured sinks after a
// mutation commits. Delivery is best effort: a sink failure is logged and
// never propagated back to the committed operation.
package audit

import (
	"context"
	"time"
)

// Actions recorded against a change.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Change describes one committed row mutation.
type Change struct {
	Table    string      `json:"table"`
	RecordID string      `json:"recordID"`
	Action   string      `json:"action"`
	Before   interface{} `json:"before,omitempty"`
	After    interface{} `json:"after,omitempty"`
	At       time.Time   `json:"at"`
}

// Sink receives change records. Implementations must not block the caller
// beyond a short bounded time.
type Sink interface {
	RecordChange(ctx context.Context, change Change)
}

// NopSink discards all changes.
type NopSink struct{}

func (NopSink) RecordChange(context.Context, Change) {}

// MultiSink fans a change out to every configured sink.
type MultiSink []Sink

func (m MultiSink) RecordChange(ctx context.Context, change Change) {
	for _, s := range m {
		s.RecordChange(ctx, change)
	}
}
