package ports

import (
	"context"

	"WordTracker/internal/domain"
)

// NewsSource lists candidate articles from the remote site and
// enriches them with per-page details.
type NewsSource interface {
	ListArticles(ctx context.Context) ([]domain.ArticleStub, error)
	FetchDetails(ctx context.Context, url string) (domain.ArticleDetail, error)
	FetchMany(ctx context.Context, stubs []domain.ArticleStub, concurrency int) []domain.Result[domain.EnrichedItem]
}

// ArticleRepository persists scraped articles keyed by canonical URL.
type ArticleRepository interface {
	UpsertArticles(ctx context.Context, items []domain.Article) (int, error)
	ListArticles(ctx context.Context, limit int) ([]domain.Article, error)
	ListArticleContents(ctx context.Context, limit int) ([]string, error)
}

// WordRepository stores per-user tracked words.
type WordRepository interface {
	AddWord(ctx context.Context, word domain.TrackedWord) (domain.TrackedWord, error)
	ListAllWords(ctx context.Context, limit int) ([]domain.TrackedWord, error)
	ListUserWords(ctx context.Context, userID int64, limit int) ([]domain.TrackedWord, error)
	GetWordByID(ctx context.Context, id int64) (domain.TrackedWord, error)
	DeleteWord(ctx context.Context, id, userID int64) (bool, error)
}

// UserRepository stores account records.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByID(ctx context.Context, id int64) (domain.User, error)
}

// DeclensionLookup is an optional external capability that resolves
// the vocative of a recognized word. Implementations return an error
// only when the service is unreachable; unrecognized words come back
// with Found=false. Callers fold both cases to "no extra forms".
type DeclensionLookup interface {
	Lookup(ctx context.Context, word string) (domain.LookupResult, error)
}
