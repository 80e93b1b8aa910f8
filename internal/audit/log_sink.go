package audit

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

var dumpConfig = spew.ConfigState{
	Indent:                  " ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// LogSink writes change records to the structured log.
type LogSink struct {
	logger *logrus.Logger
}

func NewLogSink(logger *logrus.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) RecordChange(_ context.Context, change Change) {
	entry := s.logger.WithFields(logrus.Fields{
		"table":    change.Table,
		"recordID": change.RecordID,
		"action":   change.Action,
		"at":       change.At,
	})
	if change.Before != nil {
		entry = entry.WithField("before", dumpConfig.Sprintf("%#v", change.Before))
	}
	if change.After != nil {
		entry = entry.WithField("after", dumpConfig.Sprintf("%#v", change.After))
	}
	entry.Info("Audit.RecordChange")
}
