package words

import (
	"strings"
	"testing"
	"unicode/utf8"

	"WordTracker/internal/domain"
)

func TestFindAppearancesCountsAndOrders(t *testing.T) {
	t.Parallel()

	m := mustMatcher(t, "kat")
	articles := []domain.Article{
		{ID: 1, Title: "Jedna", URL: "u1", Content: "Kat je bio tu."},
		{ID: 2, Title: "Bez pogotka", URL: "u2", Content: "Katastrofa u gradu."},
		{ID: 3, Title: "Dve", URL: "u3", Content: "Kat je bio tu. Mačka i kat su razlika."},
	}

	apps := FindAppearances(m, articles)
	if len(apps) != 2 {
		t.Fatalf("expected 2 appearances, got %d", len(apps))
	}
	if apps[0].Article.ID != 3 || apps[0].Count != 2 {
		t.Fatalf("highest count first, got %+v", apps[0])
	}
	if apps[1].Article.ID != 1 || apps[1].Count != 1 {
		t.Fatalf("unexpected second appearance %+v", apps[1])
	}
}

func TestFindAppearancesTiesKeepInputOrder(t *testing.T) {
	t.Parallel()

	m := mustMatcher(t, "kat")
	articles := []domain.Article{
		{ID: 7, Content: "kat"},
		{ID: 8, Content: "kat"},
	}

	apps := FindAppearances(m, articles)
	if apps[0].Article.ID != 7 || apps[1].Article.ID != 8 {
		t.Fatalf("tied counts must keep input order, got %d then %d",
			apps[0].Article.ID, apps[1].Article.ID)
	}
}

func TestFindAppearancesCapsContexts(t *testing.T) {
	t.Parallel()

	m := mustMatcher(t, "kat")
	body := strings.Repeat("kat i još teksta. ", 9)
	apps := FindAppearances(m, []domain.Article{{ID: 1, Content: body}})

	if len(apps) != 1 {
		t.Fatalf("expected 1 appearance, got %d", len(apps))
	}
	if apps[0].Count != 9 {
		t.Fatalf("count must include every match, got %d", apps[0].Count)
	}
	if len(apps[0].Contexts) != maxContexts {
		t.Fatalf("contexts capped at %d, got %d", maxContexts, len(apps[0].Contexts))
	}
}

func TestContextWindowClampsToBody(t *testing.T) {
	t.Parallel()

	content := "kat na početku"
	ctx := contextWindow(content, Match{Start: 0, End: 3})
	if ctx.Text != content {
		t.Fatalf("short body must be returned whole, got %q", ctx.Text)
	}
	if ctx.Position != 0 {
		t.Fatalf("position = %d, want 0", ctx.Position)
	}
}

func TestContextWindowRuneRadius(t *testing.T) {
	t.Parallel()

	// Multibyte padding on both sides; the window is measured in
	// runes, not bytes.
	pad := strings.Repeat("ć", 150)
	content := pad + "kat" + pad
	start := len(pad)
	ctx := contextWindow(content, Match{Start: start, End: start + 3})

	wantText := strings.Repeat("ć", contextRadius) + "kat" + strings.Repeat("ć", contextRadius)
	if ctx.Text != wantText {
		t.Fatalf("window = %d runes, want %d", utf8.RuneCountInString(ctx.Text),
			utf8.RuneCountInString(wantText))
	}
	if ctx.Position != 150 {
		t.Fatalf("position = %d, want rune offset 150", ctx.Position)
	}
}
