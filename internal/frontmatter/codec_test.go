package frontmatter

import (
	"reflect"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	meta := Meta{
		Title:        "API Guide",
		Description:  "How to call the API",
		Category:     "guides",
		Tags:         []string{"api", "reference"},
		AccessLevel:  "d1",
		IconURL:      "/docs/api-guide/logo.png",
		CreatedBy:    "ana",
		CreatedAt:    "2026-01-10 09:30:00 -03",
		LastEditedBy: "bruno",
		LastEditedAt: "2026-02-01 18:00:00 -03",
		Extra:        map[string]any{"pinned": true},
	}
	body := "# Intro\n\nSome **Markdown** text.\n"

	raw, err := Serialize(meta, body)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, gotBody, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got.Title != meta.Title {
		t.Fatalf("title: got %q, want %q", got.Title, meta.Title)
	}
	if got.Description != meta.Description {
		t.Fatalf("description: got %q, want %q", got.Description, meta.Description)
	}
	if !reflect.DeepEqual(got.Tags, meta.Tags) {
		t.Fatalf("tags: got %#v, want %#v", got.Tags, meta.Tags)
	}
	if got.AccessLevel != meta.AccessLevel {
		t.Fatalf("access_level: got %q, want %q", got.AccessLevel, meta.AccessLevel)
	}
	if got.CreatedAt != meta.CreatedAt {
		t.Fatalf("created_at: got %q, want %q", got.CreatedAt, meta.CreatedAt)
	}
	if got.LastEditedAt != meta.LastEditedAt {
		t.Fatalf("last_edited_at: got %q, want %q", got.LastEditedAt, meta.LastEditedAt)
	}
	if pinned, ok := got.Extra["pinned"].(bool); !ok || !pinned {
		t.Fatalf("extra key pinned lost: %#v", got.Extra)
	}
	if keys := SortedExtraKeys(got); len(keys) != 1 || keys[0] != "pinned" {
		t.Fatalf("extra keys: got %v", keys)
	}
	if gotBody != body {
		t.Fatalf("body: got %q, want %q", gotBody, body)
	}
}

func TestParseWithoutFrontMatter(t *testing.T) {
	raw := []byte("# Just a heading\n\nBody text.\n")

	meta, body, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if meta.Title != "" {
		t.Fatalf("expected empty title, got %q", meta.Title)
	}
	if body != string(raw) {
		t.Fatalf("expected whole input as body, got %q", body)
	}
}

func TestParseScalarTags(t *testing.T) {
	raw := []byte("---\ntitle: Old Doc\ntags: api\n---\n\nbody\n")

	meta, _, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(meta.Tags, []string{"api"}) {
		t.Fatalf("tags: got %#v, want [api]", meta.Tags)
	}
}

func TestParseLenientMalformedBlock(t *testing.T) {
	raw := []byte("---\ntitle: \"Broken Doc\ntags: [unclosed\n---\n\nThe body survives.\n")

	meta, body := ParseLenient(raw)
	if meta.Title != "Broken Doc" {
		t.Fatalf("expected title recovered from raw block, got %q", meta.Title)
	}
	if !strings.Contains(body, "The body survives.") {
		t.Fatalf("expected body after the block, got %q", body)
	}
	if len(meta.Tags) != 0 {
		t.Fatalf("expected no tags on lenient parse, got %#v", meta.Tags)
	}
}

func TestParseLenientTitleFromHeading(t *testing.T) {
	raw := []byte("\n# Rescue Title\n\nrest of the document\n")

	meta, body := ParseLenient(raw)
	if meta.Title != "Rescue Title" {
		t.Fatalf("expected heading title, got %q", meta.Title)
	}
	if !strings.Contains(body, "rest of the document") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	raw := append([]byte("---\ntitle: Latin\n---\n\nbod"), 0xff, 0xfe)

	meta, body, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if meta.Title != "Latin" {
		t.Fatalf("title: got %q", meta.Title)
	}
	if !strings.HasPrefix(body, "bod") {
		t.Fatalf("body lost: %q", body)
	}
}

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"from block", "---\ntitle: 'Quoted Title'\n---\n\nbody", "Quoted Title"},
		{"from heading", "# Heading Title\nbody", "Heading Title"},
		{"from first line", "plain first line\nsecond", "plain first line"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractTitle([]byte(tc.raw)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSerializeSkipsEmptyFields(t *testing.T) {
	raw, err := Serialize(Meta{Title: "Minimal"}, "body\n")
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	text := string(raw)
	if strings.Contains(text, "description") || strings.Contains(text, "tags") {
		t.Fatalf("empty fields leaked into output:\n%s", text)
	}
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("missing opening delimiter:\n%s", text)
	}
}
