package domain

import "time"

// TrackedWord is a word or phrase one user follows across the stored
// corpus. Ownership is exclusive: deleting the user cascades to the
// word rows.
type TrackedWord struct {
	ID                 int64
	UserID             int64
	Text               string
	UseDeclensions     bool
	DeclensionPatterns []string
	StemmingEnabled    bool
	CreatedAt          time.Time

	// OwnerName is populated by listings that join the owning user.
	OwnerName string
}

// FormOptions control how a tracked word expands into surface forms.
type FormOptions struct {
	UseDeclensions     bool
	DeclensionPatterns []string
	StemmingEnabled    bool
}

// Options returns the word's expansion settings.
func (w TrackedWord) Options() FormOptions {
	return FormOptions{
		UseDeclensions:     w.UseDeclensions,
		DeclensionPatterns: w.DeclensionPatterns,
		StemmingEnabled:    w.StemmingEnabled,
	}
}

// ArticleRef identifies the article an appearance was found in.
type ArticleRef struct {
	ID        int64
	Title     string
	URL       string
	CreatedAt time.Time
}

// Context is one bounded text window around a match. Position is the
// rune offset of the match inside the article body.
type Context struct {
	Text     string
	Position int
}

// Appearance reports how often a tracked word occurs in one article,
// with up to a handful of context windows.
type Appearance struct {
	Article  ArticleRef
	Count    int
	Contexts []Context
}

// WordStat aggregates a tracked word's occurrences across the corpus.
type WordStat struct {
	WordID int64
	Word   string
	Count  int
}

// LookupResult is the answer of the external declension capability.
// Found=false means the word was not recognized; that is distinct
// from the capability being unavailable, which surfaces as an error.
type LookupResult struct {
	Found       bool
	Vocative    string
	VocativeAlt string
}
