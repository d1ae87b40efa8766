package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/passageapp/passage-server/internal/domain"
)

func (s *Server) registerFeedRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "randomParagraphs",
		Method:      http.MethodGet,
		Path:        "/paragraphs/random",
		Summary:     "Random paragraph feed",
		Description: "Returns a random sample of paragraphs with aggregate " +
			"engagement counts and, when user_id resolves, the requester's own flags",
		Tags: []string{"Feed"},
	}, s.handleRandomParagraphs)
}

// === DTOs ===

// FeedBookResponse is the book detail embedded in feed items.
type FeedBookResponse struct {
	BookID string `json:"book_id" doc:"Book ID"`
	Title  string `json:"title" doc:"Title"`
	Author string `json:"author" doc:"Author"`
}

// FeedStatsResponse carries aggregate engagement counts for a paragraph.
type FeedStatsResponse struct {
	Likes     int64 `json:"likes" doc:"Events with liked=true"`
	Dislikes  int64 `json:"dislikes" doc:"Events with disliked=true"`
	Hearts    int64 `json:"hearts" doc:"Events with hearted=true"`
	Bookmarks int64 `json:"bookmarks" doc:"Events with bookmarked=true"`
}

// FeedInteractionsResponse carries the requesting user's own flags.
type FeedInteractionsResponse struct {
	IsLiked      bool `json:"is_liked" doc:"Liked flag"`
	IsDisliked   bool `json:"is_disliked" doc:"Disliked flag"`
	IsHearted    bool `json:"is_hearted" doc:"Hearted flag"`
	IsBookmarked bool `json:"is_bookmarked" doc:"Bookmarked flag"`
}

// FeedItemResponse is one feed entry.
type FeedItemResponse struct {
	ParagraphID      string                   `json:"paragraph_id" doc:"Paragraph ID"`
	Content          string                   `json:"content" doc:"Paragraph text"`
	CreatedAt        time.Time                `json:"created_at" doc:"Paragraph creation time"`
	Book             FeedBookResponse         `json:"book" doc:"Parent book"`
	Stats            FeedStatsResponse        `json:"stats" doc:"Aggregate engagement counts"`
	UserInteractions FeedInteractionsResponse `json:"user_interactions" doc:"Requesting user's flags"`
}

// FeedResponse contains the sampled paragraphs.
type FeedResponse struct {
	Paragraphs []FeedItemResponse `json:"paragraphs" doc:"Sampled paragraphs"`
}

// FeedInput contains parameters for the feed request.
type FeedInput struct {
	UserID string `query:"user_id" doc:"Optional client-supplied user identifier string for personalization"`
}

// FeedOutput wraps the feed response for Huma.
type FeedOutput struct {
	Body FeedResponse
}

func feedItemToResponse(item domain.FeedItem) FeedItemResponse {
	return FeedItemResponse{
		ParagraphID: item.ParagraphID,
		Content:     item.Content,
		CreatedAt:   item.CreatedAt,
		Book: FeedBookResponse{
			BookID: item.Book.ID,
			Title:  item.Book.Title,
			Author: item.Book.Author,
		},
		Stats: FeedStatsResponse{
			Likes:     item.Stats.Likes,
			Dislikes:  item.Stats.Dislikes,
			Hearts:    item.Stats.Hearts,
			Bookmarks: item.Stats.Bookmarks,
		},
		UserInteractions: FeedInteractionsResponse{
			IsLiked:      item.UserInteractions.IsLiked,
			IsDisliked:   item.UserInteractions.IsDisliked,
			IsHearted:    item.UserInteractions.IsHearted,
			IsBookmarked: item.UserInteractions.IsBookmarked,
		},
	}
}

// === Handlers ===

func (s *Server) handleRandomParagraphs(ctx context.Context, input *FeedInput) (*FeedOutput, error) {
	items, err := s.services.Feed.RandomFeed(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	resp := make([]FeedItemResponse, len(items))
	for i, item := range items {
		resp[i] = feedItemToResponse(item)
	}

	return &FeedOutput{Body: FeedResponse{Paragraphs: resp}}, nil
}
