package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keystone-cre/leaseledger/internal/adapter"
	"github.com/keystone-cre/leaseledger/internal/domain"
	"github.com/keystone-cre/leaseledger/internal/logger"
	"github.com/keystone-cre/leaseledger/internal/messaging"
	"github.com/keystone-cre/leaseledger/internal/store"
)

// NoticeSweeperConfig holds configuration for the notice-window sweeper
type NoticeSweeperConfig struct {
	Interval       time.Duration // Time between sweep cycles
	Lookahead      time.Duration // How far ahead of now to scan for windows
	WorkerPoolSize int           // Concurrent publish workers
	QueueSize      int           // Worker pool queue size
}

// noticeSweeper periodically scans for unexercised option windows whose
// exercise interval touches [now, now+lookahead) and publishes a notice event
// per window. Consumers deduplicate on option window id; re-announcing an
// already-open window on a later cycle is harmless.
type noticeSweeper struct {
	config    *NoticeSweeperConfig
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewNoticeSweeper creates a new notice-window sweeper
func NewNoticeSweeper(
	config *NoticeSweeperConfig,
	st store.Store,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Sweeper {
	return &noticeSweeper{
		config:    config,
		store:     st,
		publisher: publisher,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *noticeSweeper) Name() string {
	return "notice-window-sweeper"
}

// Start begins the sweeper's main loop, sweeping once per interval
func (s *noticeSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting notice-window sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("lookahead", s.config.Lookahead),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Sweep immediately on start, then on every tick
	if err := s.runSweepCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorCtx(ctx, err)
	}
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Notice-window sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Notice-window sweeper stop requested")
			return nil
		case <-ticker.C:
			if err := s.runSweepCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *noticeSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping notice-window sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Notice-window sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Notice-window sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single sweep cycle
func (s *noticeSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()
	now := startTime.UTC()
	until := now.Add(s.config.Lookahead)

	windows, err := s.store.ListOptionWindowsTouching(ctx, now, until)
	if err != nil {
		return fmt.Errorf("failed to list option windows in range: %w", err)
	}
	if len(windows) == 0 {
		logger.DebugCtx(ctx, "No option windows in the lookahead horizon")
		return nil
	}

	logger.InfoCtx(ctx, "Found option windows to announce", zap.Int("count", len(windows)))

	var published, failed atomic.Int32

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.QueueSize),
		pond.WithContext(ctx),
	)
	for _, window := range windows {
		pool.Submit(func() {
			windowID := window.ID
			versionID := window.VersionID
			event := &domain.LeaseEvent{
				EventID:    uuid.New().String(),
				EventType:  domain.LeaseEventNoticeWindow,
				LeaseID:    window.Version.LeaseID,
				VersionID:  &versionID,
				Subject:    "option_window",
				SubjectID:  &windowID,
				OccurredAt: now,
			}
			if err := s.publisher.PublishLeaseEvent(ctx, event); err != nil {
				failed.Add(1)
				logger.ErrorCtx(ctx, err,
					zap.Uint64("option_window_id", windowID),
					zap.Uint64("lease_id", window.Version.LeaseID),
				)
				return
			}
			published.Add(1)
		})
	}
	pool.StopAndWait()

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("total_windows", len(windows)),
		zap.Int32("published", published.Load()),
		zap.Int32("failed", failed.Load()),
	)
	return nil
}
