// Package scheduler runs the background maintenance daemon: a periodic
// announce tick, rebalance tick, and integrity tick, each on its own
// configurable interval, running until Stop is called.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/luxfi/parity/config"
	"github.com/luxfi/parity/log"
	"github.com/luxfi/parity/metrics"
)

// AnnounceFunc gossips every node's current announcement.
type AnnounceFunc func(ctx context.Context) error

// RebalanceFunc re-runs placement for every tracked parity tag whose
// holder count has drifted from policy.
type RebalanceFunc func(ctx context.Context) error

// IntegrityFunc recomputes and verifies the Merkle journal against live
// node state.
type IntegrityFunc func(ctx context.Context) error

// Scheduler drives the three maintenance ticks. The guard discipline
// for each tick's callback is the callback's own: the scheduler itself
// holds no table lock across a tick, only the timer loop.
type Scheduler struct {
	cfg       config.SchedulerConfig
	announce  AnnounceFunc
	rebalance RebalanceFunc
	integrity IntegrityFunc
	logger    log.Logger
	running   atomic.Bool
	wg        sync.WaitGroup
	cancel    context.CancelFunc

	ticks  metrics.Counter
	errors metrics.Counter
}

// New returns a Scheduler driving the three supplied tick callbacks. A
// nil callback disables that tick entirely.
func New(cfg config.SchedulerConfig, announce AnnounceFunc, rebalance RebalanceFunc, integrity IntegrityFunc, logger log.Logger) *Scheduler {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &Scheduler{
		cfg:       cfg,
		announce:  announce,
		rebalance: rebalance,
		integrity: integrity,
		logger:    logger,
	}
}

// WithMetrics registers tick and tick-error counters with reg and
// returns the Scheduler for chaining. Counters stay nil (a no-op) until
// this is called.
func (s *Scheduler) WithMetrics(reg *metrics.Registry) *Scheduler {
	s.ticks = reg.NewCounter("parity_scheduler_ticks_total", "total scheduler ticks run, across all tick kinds")
	s.errors = reg.NewCounter("parity_scheduler_tick_errors_total", "total scheduler tick callbacks that returned an error")
	return s
}

// Start validates cfg and launches one goroutine per enabled tick. Start
// is a no-op if the scheduler is already running.
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.cfg.Valid(); err != nil {
		return err
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	if s.announce != nil {
		s.wg.Add(1)
		go s.loop(ctx, "announce", s.cfg.AnnounceInterval, func(c context.Context) error { return s.announce(c) })
	}
	if s.rebalance != nil {
		s.wg.Add(1)
		go s.loop(ctx, "rebalance", s.cfg.RebalanceInterval, func(c context.Context) error { return s.rebalance(c) })
	}
	if s.integrity != nil {
		s.wg.Add(1)
		go s.loop(ctx, "integrity", s.cfg.IntegrityInterval, func(c context.Context) error { return s.integrity(c) })
	}
	return nil
}

// Stop cancels every tick loop and blocks until each has returned. Stop
// is a no-op if the scheduler isn't running.
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, name string, interval time.Duration, tick func(context.Context) error) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.ticks != nil {
				s.ticks.Inc()
			}
			if err := tick(ctx); err != nil {
				if s.errors != nil {
					s.errors.Inc()
				}
				s.logger.Warn("scheduler tick failed", zap.String("tick", name), zap.Error(err))
			}
		}
	}
}
