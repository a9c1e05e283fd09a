package usecase

import (
	"context"
	"fmt"
	"time"

	domrepo "YenMetrics/internal/domain/repository"
	"YenMetrics/internal/service/ratelimit"
	applogger "YenMetrics/pkg/logger"
)

// Refresher drives the scheduled evaluation cycle: fetch the raw document,
// evaluate, persist, publish, and notify listeners. A failed cycle is
// logged and counted; the previously published snapshot stays untouched.
type Refresher struct {
	source   domrepo.MarketDataSource
	agg      *MetricsAggregator
	svc      *SnapshotService
	store    domrepo.SnapshotStore
	pub      domrepo.SnapshotPublisher
	metrics  domrepo.Metrics
	logger   *applogger.Logger
	limiter  *ratelimit.Limiter
	interval time.Duration

	listeners []domrepo.SnapshotListener
}

func NewRefresher(
	source domrepo.MarketDataSource,
	agg *MetricsAggregator,
	svc *SnapshotService,
	store domrepo.SnapshotStore,
	pub domrepo.SnapshotPublisher,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	interval time.Duration,
) *Refresher {
	return &Refresher{
		source:   source,
		agg:      agg,
		svc:      svc,
		store:    store,
		pub:      pub,
		metrics:  metrics,
		logger:   logger,
		limiter:  ratelimit.New(),
		interval: interval,
	}
}

// AddListener registers a listener notified after each successful cycle.
func (r *Refresher) AddListener(l domrepo.SnapshotListener) {
	r.listeners = append(r.listeners, l)
}

// Run refreshes once immediately, then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	if err := r.RefreshOnce(ctx); err != nil {
		r.logger.Error("initial refresh failed", applogger.Error(err))
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				r.logger.Error("refresh failed", applogger.Error(err))
			}
		}
	}
}

// Close releases the publisher and store held by the refresher.
func (r *Refresher) Close() error {
	var first error
	if r.pub != nil {
		if err := r.pub.Close(); err != nil {
			first = err
		}
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RefreshOnce performs a single fetch-evaluate-publish cycle.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	// upstream courtesy: at most one fetch per half interval burst of 2
	if !r.limiter.Allow("source", 2, 2/r.interval.Seconds()) {
		return fmt.Errorf("refresh throttled")
	}

	start := time.Now()
	raw, err := r.source.Fetch(ctx)
	if err != nil {
		if r.metrics != nil {
			r.metrics.RecordError("fetch")
		}
		return fmt.Errorf("fetch market data: %w", err)
	}

	snap, err := r.agg.Evaluate(raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	if r.store != nil {
		if err := r.store.Save(ctx, snap); err != nil {
			// persistence failure is not fatal to publication
			r.logger.Warn("snapshot store save failed", applogger.Error(err))
			if r.metrics != nil {
				r.metrics.RecordError("store")
			}
		}
	}

	if r.pub != nil {
		if err := r.pub.Publish(ctx, snap); err != nil {
			r.logger.Warn("snapshot publish failed", applogger.Error(err))
			if r.metrics != nil {
				r.metrics.RecordError("publish")
			}
		}
	}

	r.svc.Publish(snap)
	for _, l := range r.listeners {
		l.Notify(snap)
	}

	if r.metrics != nil {
		r.metrics.RecordLatency("refresh", time.Since(start).Seconds())
	}
	r.logger.Info("snapshot refreshed",
		applogger.String("data_version", snap.DataVersion),
		applogger.Int("issuers", len(snap.CreditProfiles)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}
