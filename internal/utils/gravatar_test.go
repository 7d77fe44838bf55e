package utils

import (
	"strings"
	"testing"
)

func TestGravatarURLDeterministic(t *testing.T) {
	first := GravatarURL("a@x.com")
	second := GravatarURL("a@x.com")
	if first != second {
		t.Fatalf("expected identical URLs, got %q and %q", first, second)
	}
	if !strings.HasPrefix(first, "https://www.gravatar.com/avatar/") {
		t.Fatalf("unexpected URL: %q", first)
	}
	if !strings.HasSuffix(first, "?s=200&r=pg&d=mm") {
		t.Fatalf("missing default params: %q", first)
	}
}

func TestGravatarURLNormalizesEmail(t *testing.T) {
	if GravatarURL("  A@X.com ") != GravatarURL("a@x.com") {
		t.Fatal("expected case and whitespace to be normalized")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("password must not be stored in clear text")
	}
	if !CheckPasswordHash("secret1", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("expected non-matching password to fail")
	}
}
