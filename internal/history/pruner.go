package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"sqlsplit/internal/domain"
)

// Pruner periodically deletes history older than the retention window.
type Pruner struct {
	cron      *cron.Cron
	repo      domain.HistoryRepository
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewPruner schedules pruning on a standard cron spec or descriptor such as
// "@hourly". The schedule does not run until Start.
func NewPruner(repo domain.HistoryRepository, schedule string, retention time.Duration, logger *slog.Logger) (*Pruner, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("history retention must be positive, got %s", retention)
	}
	p := &Pruner{
		cron:      cron.New(),
		repo:      repo,
		retention: retention,
		logger:    logger.With("component", "history-pruner"),
		now:       time.Now,
	}
	if _, err := p.cron.AddFunc(schedule, func() {
		if _, err := p.PruneOnce(context.Background()); err != nil {
			p.logger.Warn("scheduled prune failed", "error", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", schedule, err)
	}
	return p, nil
}

// Start runs the schedule in the background.
func (p *Pruner) Start() {
	p.cron.Start()
	p.logger.Info("history pruner started", "retention", p.retention.String())
}

// Stop halts the schedule and waits for a running prune to finish.
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
	p.logger.Info("history pruner stopped")
}

// PruneOnce deletes entries older than the retention window now.
func (p *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.retention)
	n, err := p.repo.Prune(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		p.logger.Info("pruned history", "deleted", n, "cutoff", cutoff.Format(time.RFC3339))
	}
	return n, nil
}
