package operator

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/audit"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage storage.Storage
	sink    audit.Sink
	queue   chan ActionItem
}

func NewOperator(s storage.Storage, sink audit.Sink, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		sink:    sink,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: storage.MapError(err)}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		item.response <- ActionItemResponse{err: storage.MapError(err)}
		return
	}

	if err = writer.Commit(); err != nil {
		item.response <- ActionItemResponse{err: storage.MapError(err)}
		return
	}

	// The change records only reach the sink once the writer committed; a
	// rolled-back action's records die with it.
	if recorder, ok := item.action.(auditRecorder); ok {
		for _, change := range recorder.Changes() {
			o.sink.RecordChange(item.ctx, change)
		}
	}

	item.response <- ActionItemResponse{}
}

type auditRecorder interface {
	Changes() []audit.Change
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
