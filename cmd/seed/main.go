// Package main provides a tool to seed the database with sample reading data.
//
// It creates a couple of public-domain books with paragraphs, a handful of
// anonymous device identifiers, and random engagement events so the feed and
// stats endpoints have something to show during development.
//
// Usage:
//
//	DB_PATH=~/passage/passage.db go run ./cmd/seed
//	DB_PATH=~/passage/passage.db go run ./cmd/seed --users 10
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/passageapp/passage-server/internal/domain"
	"github.com/passageapp/passage-server/internal/id"
	"github.com/passageapp/passage-server/internal/store"
	"github.com/passageapp/passage-server/internal/store/sqlite"
)

var userCount = flag.Int("users", 5, "Number of anonymous device identifiers to create")

type seedBook struct {
	title, author, published, language, source string
	paragraphs                                 []string
}

var seedBooks = []seedBook{
	{
		title:     "Pride and Prejudice",
		author:    "Jane Austen",
		published: "1813-01-28",
		language:  "en",
		source:    "https://www.gutenberg.org/ebooks/1342",
		paragraphs: []string{
			"It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.",
			"However little known the feelings or views of such a man may be on his first entering a neighbourhood, this truth is so well fixed in the minds of the surrounding families, that he is considered as the rightful property of some one or other of their daughters.",
			"Mr. Bennet was so odd a mixture of quick parts, sarcastic humour, reserve, and caprice, that the experience of three-and-twenty years had been insufficient to make his wife understand his character.",
		},
	},
	{
		title:     "Moby-Dick",
		author:    "Herman Melville",
		published: "1851-10-18",
		language:  "en",
		source:    "https://www.gutenberg.org/ebooks/2701",
		paragraphs: []string{
			"Call me Ishmael. Some years ago, never mind how long precisely, having little or no money in my purse, and nothing particular to interest me on shore, I thought I would sail about a little and see the watery part of the world.",
			"Whenever I find myself growing grim about the mouth; whenever it is a damp, drizzly November in my soul; then, I account it high time to get to sea as soon as I can.",
			"There is, one knows not what sweet mystery about this sea, whose gently awful stirrings seem to speak of some hidden soul beneath.",
			"It is not down on any map; true places never are.",
		},
	},
	{
		title:     "The Picture of Dorian Gray",
		author:    "Oscar Wilde",
		published: "1890-07-01",
		language:  "en",
		source:    "https://www.gutenberg.org/ebooks/174",
		paragraphs: []string{
			"The studio was filled with the rich odour of roses, and when the light summer wind stirred amidst the trees of the garden, there came through the open door the heavy scent of the lilac.",
			"Those who find ugly meanings in beautiful things are corrupt without being charming. This is a fault.",
			"Nowadays people know the price of everything and the value of nothing.",
		},
	},
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/passage/passage.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	paragraphIDs := seedContent(ctx, s)
	userIDs := seedUsers(ctx, s, *userCount)
	seedEvents(ctx, s, rng, userIDs, paragraphIDs)

	fmt.Println("\nDone.")
}

// seedContent inserts the sample books and their paragraphs, skipping books
// that already exist from a previous run.
func seedContent(ctx context.Context, s *sqlite.Store) []string {
	var paragraphIDs []string

	for _, sb := range seedBooks {
		now := time.Now().UTC()
		book := &domain.Book{
			ID:            id.MustGenerate(id.PrefixBook),
			Title:         sb.title,
			Author:        sb.author,
			PublishedDate: sb.published,
			Language:      sb.language,
			Source:        sb.source,
			CreatedAt:     now,
		}

		if err := s.CreateBook(ctx, book); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				existing, lookupErr := s.GetBookByTitleAuthor(ctx, sb.title, sb.author)
				if lookupErr != nil {
					log.Fatalf("Failed to look up existing book %q: %v", sb.title, lookupErr)
				}
				fmt.Printf("Book already seeded: %s (%s)\n", sb.title, existing.ID)

				paragraphs, listErr := s.ListParagraphsByBook(ctx, existing.ID)
				if listErr != nil {
					log.Fatalf("Failed to list paragraphs for %q: %v", sb.title, listErr)
				}
				for _, p := range paragraphs {
					paragraphIDs = append(paragraphIDs, p.ID)
				}
				continue
			}
			log.Fatalf("Failed to create book %q: %v", sb.title, err)
		}

		fmt.Printf("Created book: %s (%s)\n", sb.title, book.ID)

		for _, content := range sb.paragraphs {
			p := &domain.Paragraph{
				ID:        id.MustGenerate(id.PrefixParagraph),
				BookID:    book.ID,
				Content:   content,
				CreatedAt: time.Now().UTC(),
			}
			if err := s.CreateParagraph(ctx, p); err != nil {
				log.Fatalf("Failed to create paragraph for %q: %v", sb.title, err)
			}
			paragraphIDs = append(paragraphIDs, p.ID)
		}
		fmt.Printf("  Added %d paragraphs\n", len(sb.paragraphs))
	}

	return paragraphIDs
}

// seedUsers registers count fresh anonymous device identifiers.
func seedUsers(ctx context.Context, s *sqlite.Store, count int) []string {
	userIDs := make([]string, 0, count)

	for range count {
		u := &domain.UserIdentifier{
			ID: id.MustGenerate(id.PrefixUser),
			// Device identifiers are opaque client strings; a UUID is a
			// realistic stand-in for what mobile clients send.
			Identifier: "device-" + uuid.NewString(),
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.CreateUser(ctx, u); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		userIDs = append(userIDs, u.ID)
		fmt.Printf("Created user %s (%s)\n", u.ID, u.Identifier)
	}

	return userIDs
}

// seedEvents creates random engagement for roughly half of the
// (user, paragraph) pairs.
func seedEvents(ctx context.Context, s *sqlite.Store, rng *rand.Rand, userIDs, paragraphIDs []string) {
	created := 0

	for _, userID := range userIDs {
		for _, paragraphID := range paragraphIDs {
			if rng.Float32() > 0.5 {
				continue
			}

			now := time.Now().UTC()
			e := &domain.Event{
				ID:          id.MustGenerate(id.PrefixEvent),
				UserID:      userID,
				ParagraphID: paragraphID,
				// Liking and disliking the same paragraph is allowed but
				// unusual; weight the flags accordingly.
				IsLiked:      rng.Float32() < 0.6,
				IsDisliked:   rng.Float32() < 0.1,
				IsHearted:    rng.Float32() < 0.3,
				IsBookmarked: rng.Float32() < 0.2,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.CreateEvent(ctx, e); err != nil {
				log.Fatalf("Failed to create event: %v", err)
			}
			created++
		}
	}

	fmt.Printf("Created %d engagement events\n", created)
}
