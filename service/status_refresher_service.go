package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crowd-status/api/statusfeed"
	"crowd-status/dao/redis"
	"crowd-status/metrics"
	"crowd-status/models"
	"crowd-status/models/geo"
	"crowd-status/models/venue"
)

// DatasetNotifier is told about every successful dataset swap.
type DatasetNotifier interface {
	NotifyDatasetUpdated(updatedAt string)
}

// StatusRefresherService periodically pulls the status feed into the dashboard.
type StatusRefresherService struct {
	feedAPI    statusfeed.StatusFeedAPI
	statusDao  *redis.RedisStatusDAO
	dashboard  *DashboardService
	geoRef     *geo.Reference
	metrics    metrics.MetricsCollector
	notifier   DatasetNotifier
	maxRetries int
	retryWait  time.Duration
	log        *slog.Logger
}

// NewStatusRefresherService constructs a new refresher with dependencies.
// notifier and m may be nil.
func NewStatusRefresherService(
	feedAPI statusfeed.StatusFeedAPI,
	statusDao *redis.RedisStatusDAO,
	dashboard *DashboardService,
	geoRef *geo.Reference,
	m metrics.MetricsCollector,
	notifier DatasetNotifier,
	maxRetries int,
	retryWait time.Duration,
) *StatusRefresherService {
	if m == nil {
		m = metrics.Noop{}
	}
	if geoRef == nil {
		geoRef = geo.Default()
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &StatusRefresherService{
		feedAPI:    feedAPI,
		statusDao:  statusDao,
		dashboard:  dashboard,
		geoRef:     geoRef,
		metrics:    m,
		notifier:   notifier,
		maxRetries: maxRetries,
		retryWait:  retryWait,
		log:        slog.Default().With(slog.String("component", "StatusRefresherService")),
	}
}

// StartPeriodicJob launches the background loop at the given interval. It
// stops when ctx is done.
func (sr *StatusRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go sr.startPeriodicJob(ctx, interval)
}

func (sr *StatusRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sr.log.Info("periodic refresher stopped")
			return
		case <-ticker.C:
			sr.log.Info("running periodic status refresh")
			if err := sr.Refresh(ctx); err != nil {
				sr.log.Error("refresh failed", slog.Any("error", err))
			}
		}
	}
}

// Refresh fetches the feed and installs it. On failure the previous dataset
// stays and the error is recorded on the dashboard.
func (sr *StatusRefresherService) Refresh(ctx context.Context) error {
	if !sr.dashboard.HasData() {
		sr.dashboard.MarkLoading()
	}

	start := time.Now()
	feed, err := sr.fetchWithRetry(ctx)
	sr.metrics.RecordFetchLatency(time.Since(start))
	if err != nil {
		sr.metrics.RecordFetchFailure(statusfeed.FailureReason(err))
		sr.dashboard.MarkFailed(err)
		return err
	}
	sr.metrics.RecordFetchSuccess()

	clean, dropped := venue.Sanitize(feed.Data)
	if dropped > 0 {
		sr.log.Warn("dropped malformed records", slog.Int("count", dropped))
		sr.metrics.RecordMalformedRecords(dropped)
	}
	sr.validateGeography(clean)

	installed := &models.StatusFeedResponse{UpdatedAt: feed.UpdatedAt, Data: clean}
	sr.dashboard.Replace(installed)
	sr.metrics.RecordDatasetSize(len(clean), countMatches(clean))
	sr.log.Info("dataset replaced",
		slog.Int("venues", len(clean)),
		slog.String("updated_at", feed.UpdatedAt),
	)

	sr.cache(ctx, installed)

	if sr.notifier != nil {
		sr.notifier.NotifyDatasetUpdated(feed.UpdatedAt)
	}
	return nil
}

// WarmFromSnapshot installs the last cached feed, if any. It reports whether
// a snapshot was found.
func (sr *StatusRefresherService) WarmFromSnapshot(ctx context.Context) (bool, error) {
	if sr.statusDao == nil {
		return false, nil
	}
	feed, err := sr.statusDao.LoadSnapshot(ctx)
	if err != nil {
		return false, err
	}
	if feed == nil {
		return false, nil
	}
	dropped := sr.dashboard.Replace(feed)
	sr.log.Info("warmed dataset from snapshot",
		slog.Int("venues", len(feed.Data)-dropped),
		slog.String("updated_at", feed.UpdatedAt),
	)
	return true, nil
}

func (sr *StatusRefresherService) fetchWithRetry(ctx context.Context) (*models.StatusFeedResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= sr.maxRetries; attempt++ {
		feed, err := sr.feedAPI.FetchStatus(ctx)
		if err == nil {
			return feed, nil
		}
		lastErr = err
		sr.log.Warn("status fetch attempt failed",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", sr.maxRetries),
			slog.Any("error", err),
		)
		if attempt == sr.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", statusfeed.ErrFetchFailure, ctx.Err())
		case <-time.After(sr.retryWait * time.Duration(attempt)):
		}
	}
	return nil, lastErr
}

func (sr *StatusRefresherService) validateGeography(venues []venue.Venue) {
	inconsistent := 0
	for i := range venues {
		v := &venues[i]
		issues := sr.geoRef.Validate(v.Region, v.Prefecture, v.City)
		if len(issues) == 0 {
			continue
		}
		inconsistent++
		for _, issue := range issues {
			sr.log.Warn("geography inconsistency",
				slog.String("venue_id", v.ID),
				slog.String("issue", issue.String()),
			)
		}
	}
	if inconsistent > 0 {
		sr.metrics.RecordGeoInconsistencies(inconsistent)
	}
}

// cache failures are logged only; the in-memory dataset is authoritative.
func (sr *StatusRefresherService) cache(ctx context.Context, feed *models.StatusFeedResponse) {
	if sr.statusDao == nil {
		return
	}
	if err := sr.statusDao.SaveSnapshot(ctx, feed); err != nil {
		sr.log.Error("failed to save snapshot", slog.Any("error", err))
		return
	}
	removed, err := sr.statusDao.SyncVenues(ctx, feed.Data)
	if err != nil {
		sr.log.Error("failed to sync venue records", slog.Any("error", err))
		return
	}
	if removed > 0 {
		sr.log.Info("removed stale venue records", slog.Int("count", removed))
	}
}

func countMatches(venues []venue.Venue) int {
	n := 0
	for i := range venues {
		n += len(venues[i].Matches)
	}
	return n
}
