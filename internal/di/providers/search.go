package providers

import (
	"github.com/samber/do/v2"

	"github.com/studydeckapp/studydeck-server/internal/config"
	"github.com/studydeckapp/studydeck-server/internal/logger"
	"github.com/studydeckapp/studydeck-server/internal/search"
	"github.com/studydeckapp/studydeck-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
// The index is nil when search is disabled by configuration.
type SearchIndexHandle struct {
	*search.CardIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	if h.CardIndex == nil {
		return nil
	}
	return h.Close()
}

// ProvideSearchIndex provides the Bleve card index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Info("Search disabled by configuration")
		return &SearchIndexHandle{CardIndex: nil}, nil
	}

	index, err := search.NewCardIndex(search.Options{
		DataPath: cfg.Search.IndexPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{CardIndex: index}, nil
}

// ProvideSearchService provides the search service, wired to the store
// so card mutations flow into the index.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	if indexHandle.CardIndex == nil {
		return nil, nil
	}

	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(indexHandle.CardIndex, log.Logger)
	storeHandle.SetCardIndexer(svc)

	return svc, nil
}

// TriggerSearchReindexIfNeeded reconciles an empty index with a
// populated store. Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	if searchService == nil {
		return
	}
	cardService := do.MustInvoke[*service.CardService](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := searchService.DocumentCount()
	if docCount > 0 {
		return
	}

	cards := cardService.List()
	if len(cards) == 0 {
		return
	}

	log.Info("Search index is empty but cards exist, triggering initial reindex",
		"card_count", len(cards),
	)

	go func() {
		if err := searchService.ReindexAll(cards); err != nil {
			log.Error("Initial search reindex failed", "error", err)
		}
	}()
}
