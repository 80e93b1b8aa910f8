package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
)

func TestRest_ServeStopsOnContextCancel(t *testing.T) {
	store := memory.NewStore()
	rest := Rest{
		Logger:   logging.SetupLogging(),
		Port:     "0",
		Operator: operator.NewOperatorDelegator(store, nil, 1),
		Service:  service.NewService(store.Reader()),
		Checker:  auth.NewRoleChecker(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- rest.Serve(ctx)
	}()

	// Give the listener a moment to come up before asking it to stop.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}
