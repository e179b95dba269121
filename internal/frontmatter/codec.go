// Package frontmatter converts between the on-disk textual representation of
// a wiki document (a YAML metadata block followed by a Markdown body) and an
// in-memory metadata/body pair. Parsing is tolerant: malformed input degrades
// to an inferred title instead of failing, so one broken file never takes the
// listing down with it.
package frontmatter

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// TimeLayout is the format used for created_at / last_edited_at values:
// local-offset date-time with second precision.
const TimeLayout = "2006-01-02 15:04:05 -07"

var blockPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n`)

// Meta holds the recognized front-matter keys plus any untouched extras so a
// parse/serialize round trip preserves fields this package does not manage.
type Meta struct {
	Title        string         `yaml:"title,omitempty"`
	Description  string         `yaml:"description,omitempty"`
	Category     string         `yaml:"category,omitempty"`
	Tags         []string       `yaml:"tags,omitempty"`
	AccessLevel  string         `yaml:"access_level,omitempty"`
	IconURL      string         `yaml:"icon_url,omitempty"`
	CoverURL     string         `yaml:"cover_url,omitempty"`
	CreatedBy    string         `yaml:"created_by,omitempty"`
	CreatedAt    string         `yaml:"created_at,omitempty"`
	LastEditedBy string         `yaml:"last_edited_by,omitempty"`
	LastEditedAt string         `yaml:"last_edited_at,omitempty"`
	Extra        map[string]any `yaml:",inline"`
}

// Parse splits raw into metadata and body. Absent front matter yields empty
// metadata and the whole input as body. A malformed metadata block returns an
// error; callers that prefer availability should use ParseLenient.
func Parse(raw []byte) (Meta, string, error) {
	text := sanitize(raw)

	var fields map[string]any
	body, err := adrg.Parse(strings.NewReader(text), &fields)
	if err != nil {
		return Meta{}, "", fmt.Errorf("frontmatter: parse: %w", err)
	}

	// The serializer separates the block from the body with one blank line;
	// drop it so serialize/parse round-trips cleanly.
	content := string(body)
	if len(fields) > 0 {
		content = strings.TrimPrefix(content, "\r\n")
		content = strings.TrimPrefix(content, "\n")
	}

	return fromMap(fields), content, nil
}

// ParseLenient behaves like Parse but recovers from a malformed metadata
// block: it scavenges a title from the raw block or the first content line
// and treats the remainder as body, with empty metadata otherwise.
func ParseLenient(raw []byte) (Meta, string) {
	meta, body, err := Parse(raw)
	if err == nil {
		// An absent metadata block still yields a usable record: infer the
		// title from the first content line.
		if meta.Title == "" && !blockPattern.MatchString(sanitize(raw)) {
			meta.Title, body = titleFromBody(body)
		}
		return meta, body
	}

	text := sanitize(raw)
	meta = Meta{}

	if m := blockPattern.FindStringSubmatch(text); m != nil {
		meta.Title = titleFromRawBlock(m[1])
		body = text[len(m[0]):]
	} else {
		body = text
	}

	if meta.Title == "" {
		meta.Title, body = titleFromBody(body)
	}
	return meta, body
}

// Serialize emits the metadata block followed by the body. Keys carried in
// Extra survive untouched, so serialize(parse(x)) keeps fields the caller
// never modified.
func Serialize(meta Meta, body string) ([]byte, error) {
	encoded, err := yaml.Marshal(normalized(meta))
	if err != nil {
		return nil, fmt.Errorf("frontmatter: serialize: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(encoded)
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// ExtractTitle scavenges a display title from raw document text without a
// full parse. It is used for legacy listings and corrupt-record placeholders.
func ExtractTitle(raw []byte) string {
	text := sanitize(raw)
	if m := blockPattern.FindStringSubmatch(text); m != nil {
		if title := titleFromRawBlock(m[1]); title != "" {
			return title
		}
		text = text[len(m[0]):]
	}
	title, _ := titleFromBody(text)
	return title
}

func sanitize(raw []byte) string {
	return strings.ToValidUTF8(string(raw), "�")
}

// normalized strips empty tag entries and drops a nil Extra map so the
// emitted block stays stable across round trips.
func normalized(meta Meta) Meta {
	tags := make([]string, 0, len(meta.Tags))
	for _, tag := range meta.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		tags = nil
	}
	meta.Tags = tags
	if len(meta.Extra) == 0 {
		meta.Extra = nil
	}
	return meta
}

func fromMap(fields map[string]any) Meta {
	meta := Meta{}
	if len(fields) == 0 {
		return meta
	}

	extra := make(map[string]any, len(fields))
	for key, value := range fields {
		switch key {
		case "title":
			meta.Title = scalarString(value)
		case "description":
			meta.Description = scalarString(value)
		case "category":
			meta.Category = scalarString(value)
		case "tags":
			meta.Tags = stringList(value)
		case "access_level":
			meta.AccessLevel = scalarString(value)
		case "icon_url":
			meta.IconURL = scalarString(value)
		case "cover_url":
			meta.CoverURL = scalarString(value)
		case "created_by":
			meta.CreatedBy = scalarString(value)
		case "created_at":
			meta.CreatedAt = scalarString(value)
		case "last_edited_by":
			meta.LastEditedBy = scalarString(value)
		case "last_edited_at":
			meta.LastEditedAt = scalarString(value)
		default:
			extra[key] = value
		}
	}
	if len(extra) > 0 {
		meta.Extra = extra
	}
	return meta
}

// scalarString renders a YAML scalar as a string. Timestamp-shaped values may
// decode as time.Time; they are formatted back into the wiki's layout.
func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(TimeLayout)
	default:
		return fmt.Sprint(v)
	}
}

// stringList accepts a YAML sequence or a bare scalar, mirroring historical
// files where tags were written as a single string.
func stringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if trimmed := strings.TrimSpace(scalarString(item)); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		if trimmed := strings.TrimSpace(scalarString(v)); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}
}

func titleFromRawBlock(block string) string {
	for _, line := range strings.Split(block, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if !strings.HasPrefix(lower, "title:") {
			continue
		}
		_, rest, _ := strings.Cut(strings.TrimSpace(line), ":")
		title := strings.TrimSpace(rest)
		title = strings.Trim(title, `"'`)
		return title
	}
	return ""
}

// titleFromBody infers a title from the first non-marker content line and
// returns the remaining text as body.
func titleFromBody(text string) (string, string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "---") {
			continue
		}
		title := strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		return title, strings.Join(lines[i+1:], "\n")
	}
	return "", text
}

// SortedExtraKeys returns the extra metadata keys in deterministic order,
// mainly for logging and tests.
func SortedExtraKeys(meta Meta) []string {
	keys := make([]string, 0, len(meta.Extra))
	for key := range meta.Extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
