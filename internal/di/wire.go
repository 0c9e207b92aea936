//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/config"
	"github.com/Victor6825/Aurora-Finance-Tracking-AI/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideHTTPClient,

		// Caches
		ProvideQuoteCache,
		ProvideSearchCache,

		// Connectors
		ProvideProfileStore,
		ProvideRateSource,
		ProvideStockClient,
		ProvideQuoteSource,
		ProvideCryptoSource,
		ProvideSearchSource,
		ProvideResponder,
		ProvidePublisher,
		ProvideQuoteStream,

		// Pipeline and HTTP surface
		ProvideChatUsecase,
		ProvideChatHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
