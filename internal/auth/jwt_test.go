package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", "wordtracker", time.Hour)
	token, err := m.Generate(7, "jovana@example.org", "Jovana")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "jovana@example.org" || claims.Name != "Jovana" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.Issuer != "wordtracker" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewManager("one", "wordtracker", time.Hour).Generate(1, "a@b.c", "A")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := NewManager("two", "wordtracker", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", "wordtracker", -time.Minute)
	// A non-positive ttl falls back to the default, so build the
	// manager directly with an expired window.
	m.ttl = -time.Minute

	token, err := m.Generate(1, "a@b.c", "A")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", "wordtracker", time.Hour)
	if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("lozinka123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "lozinka123") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "pogrešna") {
		t.Fatal("wrong password accepted")
	}
}
