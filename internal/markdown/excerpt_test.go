package markdown

import (
	"strings"
	"testing"
)

func TestExcerptStripsActiveContent(t *testing.T) {
	r := NewExcerptRenderer()

	body := "intro text\n\n<script>alert(1)</script>\n<style>body{}</style>\n\n- one\n- two\n"
	got, err := r.Excerpt(body)
	if err != nil {
		t.Fatalf("Excerpt: %v", err)
	}
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Fatalf("script content leaked: %q", got)
	}
	if strings.Contains(got, "<style") {
		t.Fatalf("style content leaked: %q", got)
	}
	if !strings.Contains(got, "intro text") {
		t.Fatalf("expected rendered text, got %q", got)
	}
	if !strings.Contains(got, "<li>") {
		t.Fatalf("expected list markup preserved, got %q", got)
	}
}

func TestExcerptTruncates(t *testing.T) {
	r := NewExcerptRenderer()

	body := strings.Repeat("palavra ", 200)
	got, err := r.Excerpt(body)
	if err != nil {
		t.Fatalf("Excerpt: %v", err)
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Fatalf("expected ellipsis suffix, got tail %q", got[len(got)-10:])
	}
	if len([]rune(got)) != ExcerptLimit+len(Ellipsis) {
		t.Fatalf("expected %d runes, got %d", ExcerptLimit+len(Ellipsis), len([]rune(got)))
	}
}

func TestExcerptEmptyBody(t *testing.T) {
	r := NewExcerptRenderer()

	got, err := r.Excerpt("   \n\t")
	if err != nil {
		t.Fatalf("Excerpt: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty excerpt, got %q", got)
	}
}

func TestTruncateShortInputUntouched(t *testing.T) {
	if got := Truncate("short", 600); got != "short" {
		t.Fatalf("got %q", got)
	}
}
