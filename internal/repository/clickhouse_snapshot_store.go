package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"YenMetrics/internal/domain/models"
	pkgch "YenMetrics/pkg/clickhouse"
	applogger "YenMetrics/pkg/logger"
)

// CHSnapshotStore implements SnapshotStore backed by ClickHouse. Snapshots
// are stored as serialized JSON keyed by data version and as_of, which is
// enough for the "as of a given data version" read path.
type CHSnapshotStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHSnapshotStore(ch *pkgch.Client, table string) *CHSnapshotStore {
	return &CHSnapshotStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHSnapshotStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHSnapshotStore) Init(ctx context.Context) error {
	stmt := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            as_of        DateTime64(3, 'UTC'),
            data_version String,
            payload      String
        ) ENGINE = MergeTree ORDER BY (data_version, as_of)
    `, s.table)
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("init snapshot table: %w", err)
	}
	return nil
}

func (s *CHSnapshotStore) Save(ctx context.Context, snap *models.MetricsSnapshot) error {
	start := time.Now()
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	q := fmt.Sprintf("INSERT INTO %s (as_of, data_version, payload) VALUES (?, ?, ?)", s.table)
	if _, err := s.db.ExecContext(ctx, q, snap.AsOf, snap.DataVersion, string(payload)); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse snapshot save error",
				applogger.String("data_version", snap.DataVersion),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("save snapshot: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse snapshot saved",
			applogger.String("data_version", snap.DataVersion),
			applogger.Int("bytes", len(payload)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHSnapshotStore) Latest(ctx context.Context) (*models.MetricsSnapshot, error) {
	q := fmt.Sprintf("SELECT payload FROM %s ORDER BY as_of DESC LIMIT 1", s.table)
	return s.queryOne(ctx, q)
}

func (s *CHSnapshotStore) ByVersion(ctx context.Context, version string) (*models.MetricsSnapshot, error) {
	q := fmt.Sprintf("SELECT payload FROM %s WHERE data_version = ? ORDER BY as_of DESC LIMIT 1", s.table)
	return s.queryOne(ctx, q, version)
}

func (s *CHSnapshotStore) queryOne(ctx context.Context, q string, args ...any) (*models.MetricsSnapshot, error) {
	var payload string
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	var snap models.MetricsSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (s *CHSnapshotStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHSnapshotStore) Close() error {
	return nil // pool is owned by the clickhouse client
}
