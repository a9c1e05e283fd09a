package di

import (
	"context"
	"fmt"
	"time"

	"YenMetrics/internal/domain/models"
	"YenMetrics/internal/domain/repository"
	domsvc "YenMetrics/internal/domain/service"
	"YenMetrics/internal/handler/api"
	internalrepo "YenMetrics/internal/repository"
	icache "YenMetrics/internal/service/cache"
	"YenMetrics/internal/service/marketsource"
	"YenMetrics/internal/services/marketdata"
	"YenMetrics/internal/services/pricing"
	"YenMetrics/internal/usecase"
	pkgch "YenMetrics/pkg/clickhouse"
	"YenMetrics/pkg/config"
	pkgkafka "YenMetrics/pkg/kafka"
	applogger "YenMetrics/pkg/logger"
	"YenMetrics/pkg/metrics"
	"YenMetrics/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when the
// snapshot history store is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSnapshotStore creates the ClickHouse-backed snapshot store and
// initializes its schema.
func ProvideSnapshotStore(chClient *pkgch.Client, cfg *config.Config, logger *applogger.Logger) (repository.SnapshotStore, error) {
	if chClient == nil {
		return nil, nil
	}
	store := internalrepo.NewCHSnapshotStore(chClient, cfg.ClickHouse.Database+".metric_snapshots")
	store.SetLogger(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("snapshot store schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when publishing is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSnapshotPublisher creates the Kafka snapshot publisher.
func ProvideSnapshotPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SnapshotPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSnapshotPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCache creates the snapshot byte cache: Redis when configured,
// otherwise an in-process TTL cache.
func ProvideCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideMarketDataSource creates the raw document source from the
// configured location.
func ProvideMarketDataSource(cfg *config.Config) repository.MarketDataSource {
	return marketsource.New(cfg.Refresh.Source, cfg.Refresh.Timeout)
}

// ProvideAdapter creates the raw-document normalizer.
func ProvideAdapter() domsvc.MarketDataAdapter {
	return marketdata.NewAdapter()
}

// ProvideRateModel creates the policy-rate probability model.
func ProvideRateModel() domsvc.RateProbabilityModel {
	return pricing.NewRateModel()
}

// ProvideCreditModel creates the credit risk model from the configured
// recovery rate and PD horizons.
func ProvideCreditModel(cfg *config.Config) (domsvc.CreditRiskModel, error) {
	return pricing.NewCreditModel(cfg.Models.RecoveryRate, cfg.Models.PDHorizons)
}

// ProvidePolicySteps reads the configured step magnitudes.
func ProvidePolicySteps(cfg *config.Config) models.PolicySteps {
	return models.PolicySteps{Hike: cfg.Models.HikeStep, Cut: cfg.Models.CutStep}
}

// ProvideAggregator creates the evaluation use case.
func ProvideAggregator(
	adapter domsvc.MarketDataAdapter,
	rates domsvc.RateProbabilityModel,
	credit domsvc.CreditRiskModel,
	steps models.PolicySteps,
	m repository.Metrics,
) *usecase.MetricsAggregator {
	return usecase.NewMetricsAggregator(adapter, rates, credit, steps, m)
}

// ProvideSnapshotService creates the snapshot query service.
func ProvideSnapshotService(store repository.SnapshotStore, cache icache.BytesCache, cfg *config.Config) *usecase.SnapshotService {
	return usecase.NewSnapshotService(store, cache, cfg.Cache.TTL)
}

// ProvideRefresher creates the scheduled refresh loop.
func ProvideRefresher(
	source repository.MarketDataSource,
	agg *usecase.MetricsAggregator,
	svc *usecase.SnapshotService,
	store repository.SnapshotStore,
	pub repository.SnapshotPublisher,
	m repository.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.Refresher {
	return usecase.NewRefresher(source, agg, svc, store, pub, m, logger, cfg.Refresh.Interval)
}

// ProvideMetricsHandler creates the HTTP API handler.
func ProvideMetricsHandler(logger *applogger.Logger, svc *usecase.SnapshotService) *api.MetricsHandler {
	return api.NewMetricsHandler(logger, svc)
}

// ProvideStreamHub creates the WebSocket push hub.
func ProvideStreamHub(logger *applogger.Logger) *api.StreamHub {
	return api.NewStreamHub(logger)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	refresher *usecase.Refresher,
	handler *api.MetricsHandler,
	hub *api.StreamHub,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, logger, refresher, handler, hub, chClient)
}
