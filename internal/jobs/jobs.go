// Package jobs holds the scheduled batch work run by cmd/scheduler.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/segyhp/rent-engine/internal/domain"
	"github.com/segyhp/rent-engine/internal/metrics"
)

const (
	JobExpireContracts   = "expire_contracts"
	JobCollectionsDigest = "collections_digest"
)

type LeaseService interface {
	ExpireContracts(ctx context.Context, asOf time.Time) (int, error)
	CollectionsDigest(ctx context.Context) (*domain.CollectionDigest, error)
}

type Runner struct {
	service LeaseService
	metrics *metrics.Metrics
	log     zerolog.Logger
	timeout time.Duration
	now     func() time.Time
}

func NewRunner(service LeaseService, m *metrics.Metrics, log zerolog.Logger, loc *time.Location, timeout time.Duration) *Runner {
	return &Runner{
		service: service,
		metrics: m,
		log:     log,
		timeout: timeout,
		now:     func() time.Time { return time.Now().In(loc) },
	}
}

// Register adds the expiry and digest jobs to c.
func (r *Runner) Register(c *cron.Cron, expirySpec, digestSpec string) error {
	if _, err := c.AddFunc(expirySpec, func() { _ = r.ExpireContracts(context.Background()) }); err != nil {
		return fmt.Errorf("schedule %s job: %w", JobExpireContracts, err)
	}
	if _, err := c.AddFunc(digestSpec, func() { _ = r.CollectionsDigest(context.Background()) }); err != nil {
		return fmt.Errorf("schedule %s job: %w", JobCollectionsDigest, err)
	}
	r.log.Info().Str("expiry", expirySpec).Str("digest", digestSpec).Msg("cron jobs scheduled")
	return nil
}

// ExpireContracts moves active contracts past their end date to expired.
func (r *Runner) ExpireContracts(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count, err := r.service.ExpireContracts(ctx, r.now())
	if err != nil {
		r.finish(JobExpireContracts, err)
		return err
	}
	r.log.Info().Str("job", JobExpireContracts).Int("expired", count).Msg("job finished")
	r.finish(JobExpireContracts, nil)
	return nil
}

// CollectionsDigest logs the day's open collection counts.
func (r *Runner) CollectionsDigest(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	digest, err := r.service.CollectionsDigest(ctx)
	if err != nil {
		r.finish(JobCollectionsDigest, err)
		return err
	}

	r.log.Info().
		Str("job", JobCollectionsDigest).
		Time("date", digest.Date).
		Int("grace_days", digest.GraceDays).
		Int("due", digest.Counts[domain.CollectionStatusDue]).
		Int("overdue", digest.Counts[domain.CollectionStatusOverdue]).
		Int("postponed", digest.Counts[domain.CollectionStatusPostponed]).
		Int("upcoming", digest.Counts[domain.CollectionStatusUpcoming]).
		Str("due_amount", digest.DueAmount.StringFixed(2)).
		Str("overdue_amount", digest.OverdueAmount.StringFixed(2)).
		Int("skipped", digest.Skipped).
		Msg("collections digest")
	r.finish(JobCollectionsDigest, nil)
	return nil
}

func (r *Runner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Runner) finish(job string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
		r.log.Error().Err(err).Str("job", job).Msg("job failed")
	}
	r.metrics.JobRuns.WithLabelValues(job, outcome).Inc()
}
