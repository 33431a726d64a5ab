package export

import (
	"context"

	"github.com/dmitrijs2005/slackpulse/internal/logging"
	"github.com/dmitrijs2005/slackpulse/internal/models"
)

// passRunner matches the sync controller's pass entrypoint.
type passRunner interface {
	RunPass(ctx context.Context, userIDs []string) (*models.SyncSummary, error)
}

// Runner decorates a sync runner with a snapshot upload after every
// successful pass. An upload failure is logged and never fails the pass:
// the counter store stays the source of truth.
type Runner struct {
	inner    passRunner
	exporter *Exporter
	logger   logging.Logger
}

func NewRunner(inner passRunner, exporter *Exporter, logger logging.Logger) *Runner {
	return &Runner{inner: inner, exporter: exporter, logger: logger}
}

func (r *Runner) RunPass(ctx context.Context, userIDs []string) (*models.SyncSummary, error) {
	summary, err := r.inner.RunPass(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	key, expErr := r.exporter.Export(ctx)
	if expErr != nil {
		r.logger.Error(ctx, "snapshot export failed", "error", expErr.Error())
	} else {
		r.logger.Info(ctx, "snapshot exported", "key", key)
	}

	return summary, nil
}
