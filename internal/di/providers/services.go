package providers

import (
	"github.com/samber/do/v2"

	"github.com/passageapp/passage-server/internal/logger"
	"github.com/passageapp/passage-server/internal/service"
)

// ProvideBookService provides the book catalog service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewBookService(storeHandle.Store, log.Logger), nil
}

// ProvideParagraphService provides the paragraph content service.
func ProvideParagraphService(i do.Injector) (*service.ParagraphService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewParagraphService(storeHandle.Store, log.Logger), nil
}

// ProvideUserService provides the anonymous user identity service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewUserService(storeHandle.Store, log.Logger), nil
}

// ProvideEventService provides the engagement event service.
func ProvideEventService(i do.Injector) (*service.EventService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewEventService(storeHandle.Store, log.Logger), nil
}

// ProvideFeedService provides the randomized paragraph feed service.
func ProvideFeedService(i do.Injector) (*service.FeedService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewFeedService(storeHandle.Store, log.Logger), nil
}
