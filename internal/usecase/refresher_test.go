package usecase

import (
	"context"
	"testing"
	"time"

	"YenMetrics/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applogger "YenMetrics/pkg/logger"
)

type stubSource struct {
	raw *models.RawMarketData
	err error
}

func (s *stubSource) Fetch(ctx context.Context) (*models.RawMarketData, error) {
	return s.raw, s.err
}

type stubStore struct {
	saved []*models.MetricsSnapshot
	err   error
}

func (s *stubStore) Init(ctx context.Context) error { return nil }
func (s *stubStore) Save(ctx context.Context, snap *models.MetricsSnapshot) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, snap)
	return nil
}
func (s *stubStore) Latest(ctx context.Context) (*models.MetricsSnapshot, error) {
	if len(s.saved) == 0 {
		return nil, nil
	}
	return s.saved[len(s.saved)-1], nil
}
func (s *stubStore) ByVersion(ctx context.Context, version string) (*models.MetricsSnapshot, error) {
	for _, snap := range s.saved {
		if snap.DataVersion == version {
			return snap, nil
		}
	}
	return nil, nil
}
func (s *stubStore) Health(ctx context.Context) error { return nil }
func (s *stubStore) Close() error                     { return nil }

type stubPublisher struct {
	published []*models.MetricsSnapshot
	err       error
}

func (p *stubPublisher) Publish(ctx context.Context, snap *models.MetricsSnapshot) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, snap)
	return nil
}
func (p *stubPublisher) Close() error { return nil }

type stubListener struct {
	notified []*models.MetricsSnapshot
}

func (l *stubListener) Notify(snap *models.MetricsSnapshot) {
	l.notified = append(l.notified, snap)
}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func TestRefreshOnce(t *testing.T) {
	source := &stubSource{raw: rawDocument()}
	store := &stubStore{}
	pub := &stubPublisher{}
	listener := &stubListener{}
	svc := NewSnapshotService(nil, nil, 0)

	r := NewRefresher(source, newAggregator(t), svc, store, pub, nil, testLogger(t), time.Hour)
	r.AddListener(listener)

	require.NoError(t, r.RefreshOnce(context.Background()))

	snap, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "2025/11/21", snap.DataVersion)

	require.Len(t, store.saved, 1)
	require.Len(t, pub.published, 1)
	require.Len(t, listener.notified, 1)
	assert.Same(t, snap, listener.notified[0])
}

func TestRefreshOnceEvaluationFailureKeepsPrevious(t *testing.T) {
	source := &stubSource{raw: rawDocument()}
	svc := NewSnapshotService(nil, nil, 0)
	r := NewRefresher(source, newAggregator(t), svc, nil, nil, nil, testLogger(t), time.Hour)

	require.NoError(t, r.RefreshOnce(context.Background()))
	first, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)

	// Broken document on the next cycle: the published snapshot survives.
	bad := rawDocument()
	bad.BojMeetings = nil
	source.raw = bad

	err = r.RefreshOnce(context.Background())
	require.Error(t, err)
	var meetErr *models.MissingMeetingError
	require.ErrorAs(t, err, &meetErr)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, current)
}

func TestRefreshOnceStoreFailureIsNotFatal(t *testing.T) {
	source := &stubSource{raw: rawDocument()}
	store := &stubStore{err: assert.AnError}
	pub := &stubPublisher{err: assert.AnError}
	svc := NewSnapshotService(nil, nil, 0)

	r := NewRefresher(source, newAggregator(t), svc, store, pub, nil, testLogger(t), time.Hour)
	require.NoError(t, r.RefreshOnce(context.Background()))

	snap, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap, "evaluation still publishes in-process when persistence fails")
}

func TestRefreshOnceThrottled(t *testing.T) {
	source := &stubSource{raw: rawDocument()}
	svc := NewSnapshotService(nil, nil, 0)
	r := NewRefresher(source, newAggregator(t), svc, nil, nil, nil, testLogger(t), time.Hour)

	require.NoError(t, r.RefreshOnce(context.Background()))
	require.NoError(t, r.RefreshOnce(context.Background()))
	err := r.RefreshOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
