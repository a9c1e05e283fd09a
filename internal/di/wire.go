//go:build wireinject
// +build wireinject

package di

import (
	"YenMetrics/pkg/config"
	"YenMetrics/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvideSnapshotStore,
		ProvideSnapshotPublisher,
		ProvideMarketDataSource,

		// Domain services
		ProvideAdapter,
		ProvideRateModel,
		ProvideCreditModel,
		ProvidePolicySteps,

		// Use cases
		ProvideAggregator,
		ProvideSnapshotService,
		ProvideRefresher,

		// Presentation
		ProvideMetricsHandler,
		ProvideStreamHub,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
