// Package di provides dependency injection configuration for the StudyDeck server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/studydeckapp/studydeck-server/internal/config"
	"github.com/studydeckapp/studydeck-server/internal/di/providers"
	"github.com/studydeckapp/studydeck-server/internal/logger"
	"github.com/studydeckapp/studydeck-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideCardService)
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideProgressService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.CardService](injector)
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.ProgressService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Reconcile the search index with the store after everything is wired.
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
