// Package markdown renders Markdown bodies into safe inline HTML excerpts for
// document listings. Full-page rendering and syntax highlighting live with the
// presentation layer; this package only produces the truncated preview used
// when a document carries no explicit description.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ExcerptLimit is the character budget for generated listing excerpts.
const ExcerptLimit = 600

// Ellipsis marks a truncated excerpt.
const Ellipsis = "..."

// ExcerptRenderer converts Markdown into sanitized HTML previews. The
// renderer is stateless and safe for concurrent use.
type ExcerptRenderer struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
}

// NewExcerptRenderer builds a renderer with GFM extensions enabled and a UGC
// sanitation policy that strips script/style and other active content while
// keeping basic formatting, lists, and tables.
func NewExcerptRenderer() *ExcerptRenderer {
	engine := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &ExcerptRenderer{
		engine: engine,
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts body into sanitized HTML without truncation.
func (r *ExcerptRenderer) Render(body string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("markdown excerpt: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Excerpt renders body and truncates the sanitized result to ExcerptLimit
// characters, appending an ellipsis marker when content was cut.
func (r *ExcerptRenderer) Excerpt(body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}

	clean, err := r.Render(body)
	if err != nil {
		return "", err
	}
	return Truncate(clean, ExcerptLimit), nil
}

// Truncate cuts text at limit runes and appends the ellipsis marker when
// anything was removed.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + Ellipsis
}
