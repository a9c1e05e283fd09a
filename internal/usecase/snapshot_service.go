package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"YenMetrics/internal/domain/models"
	domrepo "YenMetrics/internal/domain/repository"
	icache "YenMetrics/internal/service/cache"
)

const latestCacheKey = "yenmetrics:snapshot:latest"

// SnapshotService is the read-only query surface over published snapshots.
// The latest snapshot is swapped in atomically on full success only;
// historical versions come from the store.
type SnapshotService struct {
	mu     sync.RWMutex
	latest *models.MetricsSnapshot

	store    domrepo.SnapshotStore
	cache    icache.BytesCache
	cacheTTL time.Duration
}

func NewSnapshotService(store domrepo.SnapshotStore, cache icache.BytesCache, cacheTTL time.Duration) *SnapshotService {
	return &SnapshotService{store: store, cache: cache, cacheTTL: cacheTTL}
}

// Publish swaps in a newly evaluated snapshot and refreshes the byte cache.
func (s *SnapshotService) Publish(snap *models.MetricsSnapshot) {
	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	if s.cache != nil {
		if b, err := json.Marshal(snap); err == nil {
			_ = s.cache.SetBytes(latestCacheKey, b, s.cacheTTL)
		}
	}
}

// Current returns the latest published snapshot. Falls back to the cache
// and then the store after a cold start.
func (s *SnapshotService) Current(ctx context.Context) (*models.MetricsSnapshot, error) {
	s.mu.RLock()
	snap := s.latest
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	if s.cache != nil {
		if b, ok, err := s.cache.GetBytes(latestCacheKey); err == nil && ok {
			var cached models.MetricsSnapshot
			if err := json.Unmarshal(b, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	if s.store != nil {
		return s.store.Latest(ctx)
	}
	return nil, nil
}

// ByVersion returns the snapshot evaluated from a given data version.
func (s *SnapshotService) ByVersion(ctx context.Context, version string) (*models.MetricsSnapshot, error) {
	s.mu.RLock()
	snap := s.latest
	s.mu.RUnlock()
	if snap != nil && snap.DataVersion == version {
		return snap, nil
	}
	if s.store == nil {
		return nil, nil
	}
	return s.store.ByVersion(ctx, version)
}
