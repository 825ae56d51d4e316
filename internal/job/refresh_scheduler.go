// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/app/service"
	"github.com/eguilbert/cineapi/pkg/locker"
)

// RefreshScheduler periodically re-imports metadata for upcoming films,
// with distributed locking so only one API instance hits TMDB per tick.
type RefreshScheduler struct {
	refresh  *service.RefreshService
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds refresh scheduler configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRefreshScheduler creates a new RefreshScheduler.
func NewRefreshScheduler(
	refresh *service.RefreshService,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *RefreshScheduler {
	return &RefreshScheduler{
		refresh:  refresh,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
		locker:   locker,
	}
}

// Start begins the background refresh job.
func (s *RefreshScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting refresh scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.logger.Info("stopping refresh scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("refresh scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *RefreshScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeRefresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeRefresh()
		}
	}
}

// executeRefresh runs one refresh pass under the distributed lock.
//
// The lock TTL equals the interval (cooldown model): a successful run
// keeps the lock so other instances skip the whole tick, a failed run
// releases it immediately so another instance can retry.
func (s *RefreshScheduler) executeRefresh() {
	const lockKey = "refresh:scheduler:lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is refreshing, skipping execution")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	result, err := s.refresh.RefreshUpcoming(ctx)
	if err != nil {
		if releaseErr := s.locker.Release(s.ctx, lockKey); releaseErr != nil {
			s.logger.Error("failed to release lock after refresh error", zap.Error(releaseErr))
		}
		s.logger.Warn("refresh failed, lock released for retry", zap.Error(err))

		return
	}

	s.logger.Info("refresh completed, lock held for cooldown",
		zap.Int("candidates", result.Candidates),
		zap.Int("refreshed", result.Refreshed),
		zap.Int("failed", result.Failed),
		zap.Duration("cooldown", s.interval),
	)
}
