package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"WordTracker/internal/auth"
	"WordTracker/internal/domain"
	"WordTracker/internal/words"
)

type ctxKey int

const claimsKey ctxKey = 0

const newsConcurrency = 5

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Server is up"))
}

// requireAuth admits requests carrying a valid bearer token and puts
// the claims on the context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.respondError(w, http.StatusUnauthorized, "Missing token")
			return
		}
		claims, err := s.deps.Auth.Validate(token)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		ctx := contextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.deps.Articles.ListArticles(r.Context(), queryLimit(r, 0))
	if err != nil {
		s.deps.Logger.Error("list articles failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to list articles")
		return
	}

	items := make([]articleDTO, len(articles))
	for i, a := range articles {
		items[i] = toArticleDTO(a)
	}
	s.respondJSON(w, http.StatusOK, listResponse[articleDTO]{Count: len(items), Items: items})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	stubs, err := s.deps.Source.ListArticles(r.Context())
	if err != nil {
		s.deps.Logger.Error("news listing failed", "error", err)
		s.respondError(w, http.StatusBadGateway, "Failed to fetch news from source")
		return
	}

	limit := clamp(queryLimit(r, 20), 1, 50)
	if len(stubs) > limit {
		stubs = stubs[:limit]
	}

	results := s.deps.Source.FetchMany(r.Context(), stubs, newsConcurrency)
	items := make([]newsItemDTO, 0, len(results))
	for i, res := range results {
		if res.Err != nil {
			s.deps.Logger.Warn("news item failed", "url", stubs[i].URL, "error", res.Err)
			continue
		}
		items = append(items, toNewsItemDTO(res.Value))
	}
	s.respondJSON(w, http.StatusOK, listResponse[newsItemDTO]{Count: len(items), Items: items})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	limit := clamp(queryLimit(r, 20), 1, 50)
	report, err := s.deps.Runner.Run(r.Context(), limit)
	if err != nil {
		s.deps.Logger.Error("ingest failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to ingest news")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]int{
		"requested": report.Requested,
		"scraped":   report.Scraped,
		"saved":     report.Saved,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		s.respondError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	if _, err := s.deps.Users.GetUserByEmail(r.Context(), req.Email); err == nil {
		s.respondError(w, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.deps.Logger.Error("register lookup failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.deps.Logger.Error("password hashing failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user, err := s.deps.Users.CreateUser(r.Context(), domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		s.deps.Logger.Error("register failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := s.deps.Auth.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		s.deps.Logger.Error("token generation failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	s.respondJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserDTO(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		s.respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.deps.Users.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		s.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		s.deps.Logger.Error("login lookup failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user.PasswordHash == "" || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.deps.Auth.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		s.deps.Logger.Error("token generation failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	s.respondJSON(w, http.StatusOK, authResponse{Token: token, User: toUserDTO(user)})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	user, err := s.deps.Users.GetUserByID(r.Context(), claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.deps.Logger.Error("profile lookup failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]userDTO{"user": toUserDTO(user)})
}

func (s *Server) handleMyWords(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	list, err := s.deps.Words.ListUserWords(r.Context(), claims.UserID, queryLimit(r, 0))
	if err != nil {
		s.deps.Logger.Error("list user words failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to list words")
		return
	}

	items := make([]wordDTO, len(list))
	for i, word := range list {
		items[i] = toWordDTO(word)
	}
	s.respondJSON(w, http.StatusOK, listResponse[wordDTO]{Count: len(items), Items: items})
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Words.ListAllWords(r.Context(), queryLimit(r, 0))
	if err != nil {
		s.deps.Logger.Error("list words failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to list words")
		return
	}

	items := make([]wordDTO, len(list))
	for i, word := range list {
		items[i] = toWordDTO(word)
	}
	s.respondJSON(w, http.StatusOK, listResponse[wordDTO]{Count: len(items), Items: items})
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	var req struct {
		Word               string   `json:"word"`
		UseDeclensions     bool     `json:"use_declensions"`
		DeclensionPatterns []string `json:"declension_patterns"`
		StemmingEnabled    *bool    `json:"stemming_enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Word = strings.TrimSpace(req.Word)
	if req.Word == "" {
		s.respondError(w, http.StatusBadRequest, "word is required")
		return
	}
	if err := words.ValidatePatterns(req.DeclensionPatterns); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The token may outlive the account, e.g. after a database
	// reset.
	if _, err := s.deps.Users.GetUserByID(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.respondError(w, http.StatusUnauthorized, "User not found. Please login again.")
			return
		}
		s.deps.Logger.Error("user lookup failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to add word")
		return
	}

	stemming := true
	if req.StemmingEnabled != nil {
		stemming = *req.StemmingEnabled
	}
	created, err := s.deps.Words.AddWord(r.Context(), domain.TrackedWord{
		UserID:             claims.UserID,
		Text:               req.Word,
		UseDeclensions:     req.UseDeclensions,
		DeclensionPatterns: req.DeclensionPatterns,
		StemmingEnabled:    stemming,
	})
	if err != nil {
		s.deps.Logger.Error("add word failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to add word")
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]wordDTO{"item": toWordDTO(created)})
}

func (s *Server) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	deleted, err := s.deps.Words.DeleteWord(r.Context(), id, claims.UserID)
	if err != nil {
		s.deps.Logger.Error("delete word failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete word")
		return
	}
	if !deleted {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.WordSvc.Stats(r.Context(), queryLimit(r, 0))
	if err != nil {
		s.deps.Logger.Error("word stats failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}

	out := make([]statDTO, len(stats))
	for i, st := range stats {
		out[i] = statDTO{WordID: st.WordID, Word: st.Word, Count: st.Count}
	}
	s.respondJSON(w, http.StatusOK, map[string][]statDTO{"stats": out})
}

func (s *Server) handleWordAppearances(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	report, err := s.deps.WordSvc.Appearances(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.deps.Logger.Error("word appearances failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to find appearances")
		return
	}

	apps := make([]appearanceDTO, len(report.Appearances))
	for i, a := range report.Appearances {
		apps[i] = toAppearanceDTO(a)
	}
	s.respondJSON(w, http.StatusOK, appearancesResponse{
		Word:          toWordDTO(report.Word),
		Appearances:   apps,
		TotalArticles: report.TotalArticles,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.deps.Logger.Error("encode response failed", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

// queryLimit parses the limit query parameter, falling back to def.
func queryLimit(r *http.Request, def int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func contextWithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func claimsFromContext(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(auth.Claims)
	return claims, ok
}

type listResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type userDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type articleDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toArticleDTO(a domain.Article) articleDTO {
	return articleDTO{ID: a.ID, Title: a.Title, URL: a.URL, Content: a.Content, CreatedAt: a.CreatedAt}
}

type newsItemDTO struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Source      string   `json:"source"`
	Category    string   `json:"category"`
	Published   string   `json:"published,omitempty"`
	Author      string   `json:"author,omitempty"`
	Description string   `json:"description,omitempty"`
	MainImage   string   `json:"main_image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Content     string   `json:"content"`
}

func toNewsItemDTO(item domain.EnrichedItem) newsItemDTO {
	return newsItemDTO{
		Title:       item.Title,
		URL:         item.URL,
		Source:      item.Source,
		Category:    item.Category,
		Published:   item.Published,
		Author:      item.Author,
		Description: item.Description,
		MainImage:   item.MainImage,
		Tags:        item.Tags,
		Content:     item.Content,
	}
}

type wordDTO struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	Word               string    `json:"word"`
	UseDeclensions     bool      `json:"use_declensions"`
	DeclensionPatterns []string  `json:"declension_patterns"`
	StemmingEnabled    bool      `json:"stemming_enabled"`
	CreatedAt          time.Time `json:"created_at"`
	UserName           string    `json:"user_name,omitempty"`
}

func toWordDTO(w domain.TrackedWord) wordDTO {
	patterns := w.DeclensionPatterns
	if patterns == nil {
		patterns = []string{}
	}
	return wordDTO{
		ID:                 w.ID,
		UserID:             w.UserID,
		Word:               w.Text,
		UseDeclensions:     w.UseDeclensions,
		DeclensionPatterns: patterns,
		StemmingEnabled:    w.StemmingEnabled,
		CreatedAt:          w.CreatedAt,
		UserName:           w.OwnerName,
	}
}

type statDTO struct {
	WordID int64  `json:"word_id"`
	Word   string `json:"word"`
	Count  int    `json:"count"`
}

type contextDTO struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type appearanceDTO struct {
	Article  articleRefDTO `json:"article"`
	Count    int           `json:"count"`
	Contexts []contextDTO  `json:"contexts"`
}

type articleRefDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func toAppearanceDTO(a domain.Appearance) appearanceDTO {
	contexts := make([]contextDTO, len(a.Contexts))
	for i, c := range a.Contexts {
		contexts[i] = contextDTO{Text: c.Text, Position: c.Position}
	}
	return appearanceDTO{
		Article: articleRefDTO{
			ID:        a.Article.ID,
			Title:     a.Article.Title,
			URL:       a.Article.URL,
			CreatedAt: a.Article.CreatedAt,
		},
		Count:    a.Count,
		Contexts: contexts,
	}
}

type appearancesResponse struct {
	Word          wordDTO         `json:"word"`
	Appearances   []appearanceDTO `json:"appearances"`
	TotalArticles int             `json:"totalArticles"`
}
