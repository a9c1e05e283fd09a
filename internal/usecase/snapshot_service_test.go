package usecase

import (
	"context"
	"testing"
	"time"

	"YenMetrics/internal/domain/models"
	icache "YenMetrics/internal/service/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFor(version string) *models.MetricsSnapshot {
	return &models.MetricsSnapshot{
		AsOf:        time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC),
		DataVersion: version,
		RateResult:  models.RateProbabilityResult{PHike: 0.3, PNoChange: 0.7},
	}
}

func TestSnapshotServicePublishAndCurrent(t *testing.T) {
	svc := NewSnapshotService(nil, icache.NewTTLCache(), time.Minute)

	snap, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap, "cold start has no snapshot")

	published := snapshotFor("2025/11/21")
	svc.Publish(published)

	snap, err = svc.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, published, snap)
}

func TestSnapshotServiceCurrentFromCache(t *testing.T) {
	cache := icache.NewTTLCache()
	warm := NewSnapshotService(nil, cache, time.Minute)
	warm.Publish(snapshotFor("2025/11/21"))

	// A fresh service sharing the cache recovers the snapshot after restart.
	cold := NewSnapshotService(nil, cache, time.Minute)
	snap, err := cold.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "2025/11/21", snap.DataVersion)
	assert.InDelta(t, 0.3, snap.RateResult.PHike, 1e-12)
}

func TestSnapshotServiceByVersion(t *testing.T) {
	svc := NewSnapshotService(nil, nil, 0)
	svc.Publish(snapshotFor("2025/11/21"))

	snap, err := svc.ByVersion(context.Background(), "2025/11/21")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "2025/11/21", snap.DataVersion)

	// Unknown version without a store yields nothing rather than the latest.
	snap, err = svc.ByVersion(context.Background(), "2025/11/20")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotServicePublishReplacesLatest(t *testing.T) {
	svc := NewSnapshotService(nil, nil, 0)
	svc.Publish(snapshotFor("2025/11/20"))
	svc.Publish(snapshotFor("2025/11/21"))

	snap, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025/11/21", snap.DataVersion)
}
