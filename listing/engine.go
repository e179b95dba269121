// Package listing reconstructs a queryable view of the document store by
// scanning both on-disk layouts, applying free-text and tag filters, and
// producing one explicit summary value per visible document. Canonical
// documents shadow legacy flat files with the same slug, so a slug is never
// emitted twice.
package listing

import (
	"os"
	"strings"

	"docwiki/document"
	"docwiki/internal/frontmatter"
	"docwiki/internal/logging"
	"docwiki/internal/markdown"
	"docwiki/internal/paths"
)

// Summary is the single value type produced for listings; callers never need
// to probe dynamic fields.
type Summary struct {
	Slug         string
	Title        string
	Description  string
	Category     string
	Tags         []string
	AccessLevel  document.AccessLevel
	IconURL      string
	CoverURL     string
	CreatedBy    string
	CreatedAt    string
	LastEditedBy string
	LastEditedAt string
	Body         string
	Layout       paths.Layout
}

// Config wires an Engine.
type Config struct {
	Resolver paths.Resolver
	// PublicBasePath prefixes the fallback icon URL for canonical documents.
	PublicBasePath string
	Logger         logging.Logger
	// Renderer produces body excerpts; a default is built when nil.
	Renderer *markdown.ExcerptRenderer
}

// Engine scans the docs directory and produces filtered summaries.
type Engine struct {
	res        paths.Resolver
	publicBase string
	log        logging.Logger
	renderer   *markdown.ExcerptRenderer
}

// NewEngine constructs a listing engine.
func NewEngine(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = logging.NoOp()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = markdown.NewExcerptRenderer()
	}
	return &Engine{
		res:        cfg.Resolver,
		publicBase: strings.TrimRight(cfg.PublicBasePath, "/"),
		log:        log,
		renderer:   renderer,
	}
}

// List returns summaries for every document matching the free-text query and
// tag filter, in lexicographic slug order. An empty query matches everything;
// an empty tag set matches everything. Corrupt canonical records degrade to a
// placeholder summary instead of disappearing, so they stay discoverable and
// fixable. Access-tier filtering is the caller's concern, applied after
// listing with document.Tier.CanView.
func (e *Engine) List(query string, tags []string) ([]Summary, error) {
	entries, err := os.ReadDir(e.res.DocsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	wantTags := lowerSet(tags)

	var results []Summary
	seen := map[string]struct{}{}

	// Canonical layout: directories holding a doc.md.
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		slug := entry.Name()

		summary, ok := e.loadCanonical(slug)
		if !ok {
			continue
		}
		seen[slug] = struct{}{}

		if !matches(summary, q, wantTags) {
			continue
		}
		results = append(results, summary)
	}

	// Legacy layout: flat .md files not shadowed by a canonical entry.
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".md")
		if _, shadowed := seen[slug]; shadowed {
			continue
		}

		summary, ok := e.loadLegacy(slug)
		if !ok {
			continue
		}
		if !matches(summary, q, wantTags) {
			continue
		}
		results = append(results, summary)
	}

	return results, nil
}

// loadCanonical builds a summary for a canonical document. A record whose
// metadata cannot be parsed still yields a minimal placeholder using the
// directory name as title.
func (e *Engine) loadCanonical(slug string) (Summary, bool) {
	path := e.res.CanonicalFile(slug)
	raw, err := os.ReadFile(path)
	if err != nil {
		// Directory without doc.md is not a document.
		return Summary{}, false
	}

	meta, body, parseErr := frontmatter.Parse(raw)
	if parseErr != nil {
		e.log.Warn("listing.parse_failed", "slug", slug, "path", path, "error", parseErr)
		meta, body = frontmatter.ParseLenient(raw)
		if meta.Title == "" {
			meta.Title = slug
		}
		body = ""
	}

	summary := fromMeta(slug, meta, body, paths.LayoutCanonical)

	if strings.TrimSpace(summary.Description) == "" {
		excerpt, err := e.renderer.Excerpt(body)
		if err != nil {
			e.log.Warn("listing.excerpt_failed", "slug", slug, "error", err)
		} else {
			summary.Description = excerpt
		}
	}
	if summary.IconURL == "" {
		summary.IconURL = e.publicBase + "/" + slug + "/logo.png"
	}
	return summary, true
}

// loadLegacy builds a summary for an unshadowed flat file. Legacy records get
// the narrower fallback: no generated body excerpt and no icon default.
func (e *Engine) loadLegacy(slug string) (Summary, bool) {
	raw, err := os.ReadFile(e.res.LegacyFile(slug))
	if err != nil {
		return Summary{}, false
	}

	meta, body := frontmatter.ParseLenient(raw)
	if meta.Title == "" {
		meta.Title = slug
	}
	summary := fromMeta(slug, meta, body, paths.LayoutLegacy)
	summary.Body = ""
	return summary, true
}

func fromMeta(slug string, meta frontmatter.Meta, body string, layout paths.Layout) Summary {
	title := meta.Title
	if title == "" {
		title = slug
	}
	return Summary{
		Slug:         slug,
		Title:        title,
		Description:  meta.Description,
		Category:     meta.Category,
		Tags:         append([]string(nil), meta.Tags...),
		AccessLevel:  document.AccessLevel(meta.AccessLevel),
		IconURL:      meta.IconURL,
		CoverURL:     meta.CoverURL,
		CreatedBy:    meta.CreatedBy,
		CreatedAt:    meta.CreatedAt,
		LastEditedBy: meta.LastEditedBy,
		LastEditedAt: meta.LastEditedAt,
		Body:         body,
		Layout:       layout,
	}
}

// matches applies the free-text and tag filters. The haystack for the text
// filter concatenates title, description, tags, and the raw body.
func matches(s Summary, q string, wantTags map[string]struct{}) bool {
	if q != "" {
		hay := strings.ToLower(strings.Join([]string{
			s.Title,
			s.Description,
			strings.Join(s.Tags, " "),
			s.Body,
		}, " "))
		if !strings.Contains(hay, q) {
			return false
		}
	}

	if len(wantTags) > 0 {
		found := false
		for _, tag := range s.Tags {
			if _, ok := wantTags[strings.ToLower(tag)]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func lowerSet(values []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, value := range values {
		if trimmed := strings.ToLower(strings.TrimSpace(value)); trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}

// FilterByTier applies the caller-side access policy to an already produced
// listing: readers see tier-1 and untiered documents, privileged readers add
// tier 2, administrators see everything.
func FilterByTier(summaries []Summary, tier document.Tier) []Summary {
	out := make([]Summary, 0, len(summaries))
	for _, summary := range summaries {
		if tier.CanView(summary.AccessLevel) {
			out = append(out, summary)
		}
	}
	return out
}
