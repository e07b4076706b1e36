package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"WordTracker/internal/domain"
	"WordTracker/internal/ports"
)

// Querier is the subset of pgxpool.Pool the store needs. Tests
// substitute a pgxmock pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the PostgreSQL persistence layer for articles, tracked
// words and users.
type Store struct {
	db Querier
	sb sq.StatementBuilderType
}

var _ ports.ArticleRepository = (*Store)(nil)
var _ ports.WordRepository = (*Store)(nil)
var _ ports.UserRepository = (*Store)(nil)

func New(db Querier) *Store {
	return &Store{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// InitSchema applies the idempotent DDL.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// clampLimit folds a non-positive limit to def and caps it at max.
func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// UpsertArticles inserts articles keyed by URL in one transaction,
// refreshing title and content on conflict. Rows missing a title,
// URL or body are skipped. Returns the number of rows written.
func (s *Store) UpsertArticles(ctx context.Context, items []domain.Article) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	upserted := 0
	for _, a := range items {
		if a.Title == "" || a.URL == "" || a.Content == "" {
			continue
		}
		query, args, err := s.sb.
			Insert("articles").
			Columns("title", "url", "content").
			Values(a.Title, a.URL, a.Content).
			Suffix(`ON CONFLICT (url) DO UPDATE
				SET title = EXCLUDED.title,
				    content = EXCLUDED.content`).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build upsert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("upsert article %s: %w", a.URL, err)
		}
		upserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return upserted, nil
}

// ListArticles returns the most recent articles, newest first.
func (s *Store) ListArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	query, args, err := s.sb.
		Select("id", "title", "url", "content", "created_at").
		From("articles").
		OrderBy("created_at DESC").
		Limit(uint64(clampLimit(limit, 20, 100))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list articles: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Content, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListArticleContents returns only the bodies of the most recent
// articles, newest first.
func (s *Store) ListArticleContents(ctx context.Context, limit int) ([]string, error) {
	query, args, err := s.sb.
		Select("content").
		From("articles").
		OrderBy("created_at DESC").
		Limit(uint64(clampLimit(limit, 50, 1000))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list contents: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list article contents: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		out = append(out, content)
	}
	return out, rows.Err()
}

// AddWord creates a tracked word for its owner and returns the
// stored row.
func (s *Store) AddWord(ctx context.Context, word domain.TrackedWord) (domain.TrackedWord, error) {
	patterns := word.DeclensionPatterns
	if patterns == nil {
		patterns = []string{}
	}

	query, args, err := s.sb.
		Insert("words").
		Columns("user_id", "word", "use_declensions", "declension_patterns", "stemming_enabled").
		Values(word.UserID, word.Text, word.UseDeclensions, patterns, word.StemmingEnabled).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.TrackedWord{}, fmt.Errorf("build add word: %w", err)
	}

	if err := s.db.QueryRow(ctx, query, args...).Scan(&word.ID, &word.CreatedAt); err != nil {
		return domain.TrackedWord{}, fmt.Errorf("add word: %w", err)
	}
	return word, nil
}

const wordColumns = `w.id, w.user_id, w.word, w.use_declensions, w.declension_patterns, w.stemming_enabled, w.created_at`

// ListAllWords returns tracked words of every user, newest first,
// with the owner's name resolved.
func (s *Store) ListAllWords(ctx context.Context, limit int) ([]domain.TrackedWord, error) {
	query, args, err := s.sb.
		Select(wordColumns, `COALESCE(u.name, '') AS user_name`).
		From("words w").
		LeftJoin("users u ON u.id = w.user_id").
		OrderBy("w.created_at DESC").
		Limit(uint64(clampLimit(limit, 200, 1000))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows, true)
}

// ListUserWords returns one user's tracked words, newest first.
func (s *Store) ListUserWords(ctx context.Context, userID int64, limit int) ([]domain.TrackedWord, error) {
	query, args, err := s.sb.
		Select(wordColumns).
		From("words w").
		Where(sq.Eq{"w.user_id": userID}).
		OrderBy("w.created_at DESC").
		Limit(uint64(clampLimit(limit, 50, 500))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list user words: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list user words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows, false)
}

// GetWordByID returns one tracked word or domain.ErrNotFound.
func (s *Store) GetWordByID(ctx context.Context, id int64) (domain.TrackedWord, error) {
	query, args, err := s.sb.
		Select(wordColumns).
		From("words w").
		Where(sq.Eq{"w.id": id}).
		ToSql()
	if err != nil {
		return domain.TrackedWord{}, fmt.Errorf("build get word: %w", err)
	}

	var w domain.TrackedWord
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&w.ID, &w.UserID, &w.Text, &w.UseDeclensions, &w.DeclensionPatterns, &w.StemmingEnabled, &w.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TrackedWord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.TrackedWord{}, fmt.Errorf("get word: %w", err)
	}
	return w, nil
}

// DeleteWord removes a word owned by userID. The bool reports
// whether a row was actually deleted.
func (s *Store) DeleteWord(ctx context.Context, id, userID int64) (bool, error) {
	query, args, err := s.sb.
		Delete("words").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete word: %w", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete word: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CreateUser stores a new account and returns the stored row.
func (s *Store) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	query, args, err := s.sb.
		Insert("users").
		Columns("name", "email", "password_hash").
		Values(user.Name, user.Email, user.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build create user: %w", err)
	}

	if err := s.db.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns an account or domain.ErrNotFound.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	query, args, err := s.sb.
		Select("id", "name", "email", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build get user: %w", err)
	}
	return s.scanUser(ctx, query, args)
}

// GetUserByID returns an account or domain.ErrNotFound.
func (s *Store) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	query, args, err := s.sb.
		Select("id", "name", "email", "password_hash", "created_at").
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("build get user: %w", err)
	}
	return s.scanUser(ctx, query, args)
}

func (s *Store) scanUser(ctx context.Context, query string, args []any) (domain.User, error) {
	var u domain.User
	err := s.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanWords(rows pgx.Rows, withOwner bool) ([]domain.TrackedWord, error) {
	var out []domain.TrackedWord
	for rows.Next() {
		var w domain.TrackedWord
		dest := []any{&w.ID, &w.UserID, &w.Text, &w.UseDeclensions, &w.DeclensionPatterns, &w.StemmingEnabled, &w.CreatedAt}
		if withOwner {
			dest = append(dest, &w.OwnerName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		if w.DeclensionPatterns == nil {
			w.DeclensionPatterns = []string{}
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
