package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-cre/leaseledger/internal/adapter"
	"github.com/keystone-cre/leaseledger/internal/logger"
	"github.com/keystone-cre/leaseledger/internal/messaging"
	"github.com/keystone-cre/leaseledger/internal/store"
	"github.com/keystone-cre/leaseledger/internal/store/schema"
)

// emptyWindowStore serves sweep cycles with no windows to announce
type emptyWindowStore struct {
	store.Store
}

func (emptyWindowStore) ListOptionWindowsTouching(ctx context.Context, from, to time.Time) ([]schema.OptionWindow, error) {
	return nil, nil
}

func newTestSweeper(t *testing.T) Sweeper {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	return NewNoticeSweeper(
		&NoticeSweeperConfig{
			Interval:       time.Minute,
			Lookahead:      30 * 24 * time.Hour,
			WorkerPoolSize: 2,
			QueueSize:      10,
		},
		emptyWindowStore{},
		messaging.NewNoopPublisher(),
		adapter.NewClock(),
	)
}

func TestStopBeforeStart(t *testing.T) {
	s := newTestSweeper(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// A sweeper that never ran has nothing to wind down
	err := s.Stop(ctx)
	require.NoError(t, err)
	assert.NoError(t, ctx.Err())

	// Still idempotent on repeat calls
	require.NoError(t, s.Stop(ctx))
}

func TestStartTwice(t *testing.T) {
	s := newTestSweeper(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan error, 1)
	go func() {
		started <- s.Start(ctx)
	}()

	// Give the first Start time to claim the running flag
	require.Eventually(t, func() bool {
		return s.(*noticeSweeper).running.Load()
	}, time.Second, 10*time.Millisecond)

	err := s.Start(ctx)
	require.Error(t, err)

	cancel()
	select {
	case err := <-started:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
