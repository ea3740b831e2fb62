package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/studydeckapp/studydeck-server/internal/logger"
	"github.com/studydeckapp/studydeck-server/internal/service"
)

// ProvideCardService provides the card service with a loaded snapshot.
func ProvideCardService(i do.Injector) (*service.CardService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewCardService(storeHandle.Store, log.Logger)
	if err := svc.Load(context.Background()); err != nil {
		return nil, err
	}

	log.Info("Card collection loaded", "cards", svc.Count())

	return svc, nil
}

// ProvideSessionService provides the study session service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	cardService := do.MustInvoke[*service.CardService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(cardService, log.Logger), nil
}

// ProvideProgressService provides the progress service.
func ProvideProgressService(i do.Injector) (*service.ProgressService, error) {
	cardService := do.MustInvoke[*service.CardService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProgressService(cardService, log.Logger), nil
}
