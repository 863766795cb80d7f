package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskforge/backend/internal/infrastructure/journal"
)

// PrunerConfig controls how often and how far back the journal is trimmed.
type PrunerConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// JournalPruner periodically drops journal entries past the retention window.
type JournalPruner struct {
	store  *journal.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    PrunerConfig
}

func NewJournalPruner(store *journal.Store, logger *zap.Logger, cfg PrunerConfig) *JournalPruner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jp := &JournalPruner{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = jp.cron.AddFunc(schedule, jp.prune)

	return jp
}

// Start launches the cron scheduler.
func (jp *JournalPruner) Start() {
	if jp == nil || jp.cron == nil {
		return
	}
	jp.cron.Start()
	jp.logger.Info("journal pruner started",
		zap.Duration("interval", jp.cfg.Interval),
		zap.Duration("retention", jp.cfg.Retention))
}

// Stop gracefully stops the scheduler.
func (jp *JournalPruner) Stop(ctx context.Context) {
	if jp == nil || jp.cron == nil {
		return
	}
	stopCtx := jp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	jp.logger.Info("journal pruner stopped")
}

func (jp *JournalPruner) prune() {
	if jp.store == nil {
		return
	}
	cutoff := time.Now().UTC().Add(-jp.cfg.Retention)
	if err := jp.store.Prune(cutoff); err != nil {
		jp.logger.Error("journal prune failed", zap.Error(err))
		return
	}
	if size, err := jp.store.Size(); err == nil {
		jp.logger.Debug("journal pruned", zap.Int("entries", size))
	}
}
