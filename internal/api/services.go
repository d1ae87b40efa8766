package api

import (
	"github.com/passageapp/passage-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Book      *service.BookService
	Paragraph *service.ParagraphService
	User      *service.UserService
	Event     *service.EventService
	Feed      *service.FeedService
}
