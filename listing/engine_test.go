package listing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"docwiki/document"
	"docwiki/internal/paths"
	"docwiki/trash"
)

func newTestEngine(t *testing.T) (*Engine, *document.Store, paths.Resolver) {
	t.Helper()

	root := t.TempDir()
	res := paths.NewResolver(filepath.Join(root, "docs"))
	if err := os.MkdirAll(res.DocsDir(), 0o755); err != nil {
		t.Fatalf("mkdir docs: %v", err)
	}

	store := document.NewStore(document.Config{
		Resolver: res,
		Trash: trash.NewManager(trash.Config{
			Resolver: res,
			TrashDir: filepath.Join(root, "trash"),
		}),
		TimeFunc: func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) },
	})
	engine := NewEngine(Config{Resolver: res, PublicBasePath: "/docs"})
	return engine, store, res
}

func seedDoc(t *testing.T, store *document.Store, title, body string, tags []string) string {
	t.Helper()
	slug, err := store.Write(document.WriteRequest{
		Title:  title,
		Body:   body,
		Author: "ana",
		Tags:   tags,
	})
	if err != nil {
		t.Fatalf("seed %q: %v", title, err)
	}
	return slug
}

func slugs(summaries []Summary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Slug)
	}
	return out
}

func TestListTagFilter(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	seedDoc(t, store, "Doc Api", "a", []string{"api"})
	seedDoc(t, store, "Doc Guide", "b", []string{"guide"})
	seedDoc(t, store, "Doc Both", "c", []string{"api", "guide"})

	results, err := engine.List("", []string{"api"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := slugs(results)
	if len(got) != 2 || got[0] != "doc-api" || got[1] != "doc-both" {
		t.Fatalf("tag filter: got %v, want [doc-api doc-both]", got)
	}
}

func TestListQueryMatchesBody(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	seedDoc(t, store, "First", "nothing to see", nil)
	seedDoc(t, store, "Second", "the NEEDLE hides here", nil)

	results, err := engine.List("needle", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "second" {
		t.Fatalf("query filter: got %v", slugs(results))
	}
}

func TestListEmptyQueryMatchesEverything(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	seedDoc(t, store, "Um", "a", nil)
	seedDoc(t, store, "Dois", "b", nil)

	results, err := engine.List("", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected both documents, got %v", slugs(results))
	}
}

func TestListGeneratesExcerpt(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	body := "# Heading\n\n<script>evil()</script>\n\n" + strings.Repeat("texto ", 300)
	slug, err := store.Write(document.WriteRequest{
		Title:       "Sem Descricao",
		Body:        body,
		Author:      "ana",
		Description: func() *string { s := ""; return &s }(),
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	results, err := engine.List("", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 1 || results[0].Slug != slug {
		t.Fatalf("unexpected listing: %v", slugs(results))
	}

	desc := results[0].Description
	if !strings.HasSuffix(desc, "...") {
		t.Fatalf("expected truncated excerpt with ellipsis, got tail %q", desc[len(desc)-12:])
	}
	if strings.Contains(desc, "<script") || strings.Contains(desc, "evil()") {
		t.Fatalf("active content leaked into excerpt: %q", desc)
	}
}

func TestListCorruptRecordBecomesPlaceholder(t *testing.T) {
	engine, _, res := newTestEngine(t)

	if err := os.MkdirAll(res.DocDir("quebrado"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	corrupt := "---\ntags: [unclosed\n---\n"
	if err := os.WriteFile(res.CanonicalFile("quebrado"), []byte(corrupt), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	results, err := engine.List("", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("corrupt record dropped from listing: %v", slugs(results))
	}
	got := results[0]
	if got.Slug != "quebrado" || got.Title != "quebrado" {
		t.Fatalf("placeholder mismatch: %#v", got)
	}
	if len(got.Tags) != 0 {
		t.Fatalf("placeholder should have no tags: %#v", got.Tags)
	}
}

func TestListLegacyAppendedUnlessShadowed(t *testing.T) {
	engine, store, res := newTestEngine(t)

	// Unshadowed legacy file.
	legacy := "---\ntitle: Antigo\ntags:\n    - compat\n---\n\ncorpo legado\n"
	if err := os.WriteFile(res.LegacyFile("antigo"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("seed legacy: %v", err)
	}

	// Legacy file shadowed by a canonical document with the same slug.
	if err := os.WriteFile(res.LegacyFile("duplicado"), []byte("---\ntitle: Velho\n---\n\nold\n"), 0o644); err != nil {
		t.Fatalf("seed shadowed legacy: %v", err)
	}
	if _, err := store.Write(document.WriteRequest{Slug: "duplicado", Title: "Novo", Body: "new", Author: "ana"}); err != nil {
		t.Fatalf("seed canonical: %v", err)
	}

	results, err := engine.List("", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := slugs(results); len(got) != 2 {
		t.Fatalf("expected 2 entries, got %v", got)
	}

	byslug := map[string]Summary{}
	for _, s := range results {
		byslug[s.Slug] = s
	}
	if byslug["duplicado"].Title != "Novo" {
		t.Fatalf("canonical should shadow legacy: %#v", byslug["duplicado"])
	}
	antigo := byslug["antigo"]
	if antigo.Layout != paths.LayoutLegacy || antigo.Title != "Antigo" {
		t.Fatalf("legacy entry wrong: %#v", antigo)
	}
	if antigo.IconURL != "" {
		t.Fatalf("legacy entries get no icon fallback: %q", antigo.IconURL)
	}
}

func TestListIconFallback(t *testing.T) {
	engine, store, _ := newTestEngine(t)

	slug := seedDoc(t, store, "Com Logo", "x", nil)

	results, err := engine.List("", nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := "/docs/" + slug + "/logo.png"
	if results[0].IconURL != want {
		t.Fatalf("icon fallback: got %q, want %q", results[0].IconURL, want)
	}
}

func TestFilterByTier(t *testing.T) {
	summaries := []Summary{
		{Slug: "open", AccessLevel: document.AccessTier1},
		{Slug: "internal", AccessLevel: document.AccessTier2},
		{Slug: "admin", AccessLevel: document.AccessTier3},
		{Slug: "untiered"},
	}

	if got := slugs(FilterByTier(summaries, document.TierReader)); len(got) != 2 {
		t.Fatalf("reader: got %v", got)
	}
	if got := slugs(FilterByTier(summaries, document.TierPrivileged)); len(got) != 3 {
		t.Fatalf("privileged: got %v", got)
	}
	if got := slugs(FilterByTier(summaries, document.TierAdmin)); len(got) != 4 {
		t.Fatalf("admin: got %v", got)
	}
}
