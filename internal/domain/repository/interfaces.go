package repository

import (
	"context"

	"YenMetrics/internal/domain/models"
)

// MarketDataSource delivers the already-fetched raw market-data document.
// Retry of transient upstream failures belongs here, not in the models.
type MarketDataSource interface {
	Fetch(ctx context.Context) (*models.RawMarketData, error)
}

// SnapshotStore retains evaluated snapshots keyed by data version.
type SnapshotStore interface {
	Init(ctx context.Context) error
	Save(ctx context.Context, snap *models.MetricsSnapshot) error
	Latest(ctx context.Context) (*models.MetricsSnapshot, error)
	ByVersion(ctx context.Context, version string) (*models.MetricsSnapshot, error)
	Health(ctx context.Context) error
	Close() error
}

// SnapshotPublisher emits each newly built snapshot to downstream consumers.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap *models.MetricsSnapshot) error
	Close() error
}

// SnapshotListener is notified after a snapshot is published; used to push
// updates to connected dashboard clients.
type SnapshotListener interface {
	Notify(snap *models.MetricsSnapshot)
}

type Metrics interface {
	RecordEvaluation(result string)
	RecordError(kind string)
	RecordClampFlag(model string)
	RecordScenarioProbability(scenario string, p float64)
	RecordIssuersRanked(n int)
	RecordLatency(op string, seconds float64)
}
