package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalYAML = `
environment: test
refresh:
  source: data/market_data.json
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 0.10, cfg.Models.RecoveryRate)
	assert.Equal(t, 0.0025, cfg.Models.HikeStep)
	assert.Equal(t, -0.0025, cfg.Models.CutStep)
	assert.Equal(t, []int{1, 3, 5, 10}, cfg.Models.PDHorizons)
	assert.Equal(t, time.Hour, cfg.Refresh.Interval)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: test\n"))
	require.Error(t, err, "refresh.source is mandatory")

	_, err = Load(writeConfig(t, minimalYAML+`
models:
  recovery_rate: 1.5
`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, minimalYAML+`
models:
  cut_step: 0.0025
`))
	require.Error(t, err, "cut step must be negative")

	_, err = Load(writeConfig(t, minimalYAML+`
kafka:
  enabled: true
`))
	require.Error(t, err, "enabled kafka needs brokers")
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "https://ingest.example.com/market_data.json")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadWithEnv(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://ingest.example.com/market_data.json", cfg.Refresh.Source)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
}
