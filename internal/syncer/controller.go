package syncer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/logging"
	"github.com/dmitrijs2005/slackpulse/internal/models"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/checkpoint"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/counts"
	"github.com/dmitrijs2005/slackpulse/internal/repositories/users"
	"github.com/dmitrijs2005/slackpulse/internal/shared"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Controller orchestrates sync passes. It owns the checkpoint: no other
// component writes it.
type Controller struct {
	src        MessageSource
	walker     *Walker
	users      users.Repository
	counts     counts.Repository
	checkpoint checkpoint.Repository
	logger     logging.Logger
	metrics    *Metrics

	// advanceOnFailure keeps the original behavior of moving the checkpoint
	// forward even when some users failed. Setting it to false re-walks the
	// whole window next pass instead of losing the failed user's gap.
	advanceOnFailure bool

	now func() time.Time

	// mu serializes passes: concurrent triggers queue instead of racing on
	// the checkpoint.
	mu sync.Mutex
}

// NewController wires a Controller. The walker and the controller share the
// same source; metrics may be nil when instrumentation is not wanted.
func NewController(
	src MessageSource,
	walker *Walker,
	usersRepo users.Repository,
	countsRepo counts.Repository,
	checkpointRepo checkpoint.Repository,
	logger logging.Logger,
	metrics *Metrics,
	advanceOnFailure bool,
) *Controller {
	return &Controller{
		src:              src,
		walker:           walker,
		users:            usersRepo,
		counts:           countsRepo,
		checkpoint:       checkpointRepo,
		logger:           logger,
		metrics:          metrics,
		advanceOnFailure: advanceOnFailure,
		now:              time.Now,
	}
}

// RunPass executes one full sync pass over userIDs and always returns a
// summary when the pass ran, even if some users failed. Only store-level
// failures on the checkpoint itself fail the pass globally.
func (c *Controller) RunPass(ctx context.Context, userIDs []string) (*models.SyncSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(userIDs) == 0 {
		return nil, shared.ErrorNoUsers
	}

	started := c.now()

	from, err := c.checkpoint.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}
	until := c.now().UTC()

	summary := &models.SyncSummary{
		PassID:    uuid.NewString(),
		Attempted: len(userIDs),
		From:      from,
		Until:     until,
	}
	log := c.logger.With("pass_id", summary.PassID)

	log.Info(ctx, "sync pass started", "users", len(userIDs), "from", from, "until", until)

	c.reconcileDirectory(ctx, log, userIDs)

	var (
		resMu     sync.Mutex
		succeeded []string
		failed    []string
		merged    int
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, userID := range userIDs {
		g.Go(func() error {
			byDate, err := c.walker.Walk(gctx, userID, from)
			if err == nil {
				err = c.counts.UpsertBatch(gctx, userID, byDate)
				if err != nil {
					err = fmt.Errorf("failed to merge counts for user %s: %w", userID, err)
				}
			}

			resMu.Lock()
			defer resMu.Unlock()
			if err != nil {
				log.Warn(gctx, "user sync failed", "user_id", userID, "error", err.Error())
				if c.metrics != nil {
					c.metrics.UserFailuresTotal.WithLabelValues(userID).Inc()
				}
				failed = append(failed, userID)
				return nil
			}
			succeeded = append(succeeded, userID)
			merged += len(byDate)
			return nil
		})
	}
	// workers never return errors, the join is what matters
	_ = g.Wait()

	sort.Strings(succeeded)
	sort.Strings(failed)
	summary.Succeeded = succeeded
	summary.Failed = failed

	if c.advanceOnFailure || len(failed) == 0 {
		if err := c.checkpoint.Set(ctx, until); err != nil {
			return summary, fmt.Errorf("failed to advance checkpoint: %w", err)
		}
	} else {
		log.Warn(ctx, "checkpoint held back, failed users will be re-walked",
			"failed", len(failed))
	}

	if c.metrics != nil {
		c.metrics.PassesTotal.Inc()
		c.metrics.MergedDaysTotal.Add(float64(merged))
		c.metrics.PassDuration.Observe(c.now().Sub(started).Seconds())
	}

	log.Info(ctx, "sync pass finished",
		"succeeded", len(succeeded), "failed", len(failed), "merged_days", merged)

	return summary, nil
}

// reconcileDirectory upserts the display name of every configured user.
// Resolution failures degrade to the raw ID as the name and are never fatal.
func (c *Controller) reconcileDirectory(ctx context.Context, log logging.Logger, userIDs []string) {
	for _, userID := range userIDs {
		user, err := c.src.UserInfo(ctx, userID)
		if err != nil {
			log.Warn(ctx, "display name resolution failed, falling back to id",
				"user_id", userID, "error", err.Error())
			user = &models.User{ID: userID, Name: userID}
		}
		if err := c.users.Upsert(ctx, user); err != nil {
			log.Error(ctx, "failed to upsert user", "user_id", userID, "error", err.Error())
		}
	}
}
