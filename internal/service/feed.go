package service

import (
	"context"
	"log/slog"

	domainerrors "github.com/passageapp/passage-server/internal/errors"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/store"
)

// FeedSampleSize is the maximum number of paragraphs returned per feed
// request. Stores with fewer paragraphs return all of them, unpadded.
const FeedSampleSize = 5

// FeedService assembles the randomized paragraph feed.
type FeedService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFeedService creates a new feed service.
func NewFeedService(store store.Store, logger *slog.Logger) *FeedService {
	return &FeedService{
		store:  store,
		logger: logger,
	}
}

// RandomFeed samples up to FeedSampleSize paragraphs uniformly without
// replacement and enriches each with its book, aggregate engagement counts,
// and the requesting user's own flags. userIdentifier is optional: an empty
// or unresolvable identifier degrades to no personalization (all personal
// flags false) rather than an error. An empty store is an error.
func (s *FeedService) RandomFeed(ctx context.Context, userIdentifier string) ([]domain.FeedItem, error) {
	total, err := s.store.CountParagraphs(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "count paragraphs")
	}
	if total == 0 {
		return nil, domainerrors.EmptyStore("no paragraphs available")
	}

	paragraphs, err := s.store.RandomParagraphs(ctx, FeedSampleSize)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "sample paragraphs")
	}

	paragraphIDs := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		paragraphIDs[i] = p.ID
	}

	counts, err := s.store.ParagraphEngagementCounts(ctx, paragraphIDs)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "aggregate engagement")
	}

	// Resolve the user if an identifier was supplied; anything that fails
	// to resolve means an unpersonalized feed, not an error.
	var userEvents map[string]*domain.Event
	if userIdentifier != "" {
		user, err := s.store.GetUserByIdentifier(ctx, userIdentifier)
		switch {
		case err == nil:
			userEvents, err = s.store.UserEventsForParagraphs(ctx, user.ID, paragraphIDs)
			if err != nil {
				return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "load user events")
			}
		case domainerrors.Is(err, store.ErrNotFound):
			s.logger.Debug("Feed user not resolved, serving unpersonalized", "identifier", userIdentifier)
		default:
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get user")
		}
	}

	// Books repeat across paragraphs; fetch each once.
	books := make(map[string]*domain.Book)
	for _, p := range paragraphs {
		if _, ok := books[p.BookID]; ok {
			continue
		}
		b, err := s.store.GetBookByID(ctx, p.BookID)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "get book")
		}
		books[p.BookID] = b
	}

	items := make([]domain.FeedItem, 0, len(paragraphs))
	for _, p := range paragraphs {
		b := books[p.BookID]
		item := domain.FeedItem{
			ParagraphID: p.ID,
			Content:     p.Content,
			CreatedAt:   p.CreatedAt,
			Book: domain.BookSummary{
				ID:     b.ID,
				Title:  b.Title,
				Author: b.Author,
			},
			Stats: counts[p.ID],
		}
		if e, ok := userEvents[p.ID]; ok {
			item.UserInteractions = e.Flags()
		}
		items = append(items, item)
	}

	return items, nil
}
