package document

import (
	"strings"

	"docwiki/internal/frontmatter"
)

// AccessLevel is the closed set of visibility tiers a document can carry.
type AccessLevel string

const (
	// AccessTier1 is the default tier, visible to every authenticated user.
	AccessTier1 AccessLevel = "d1"
	// AccessTier2 is visible to privileged readers and administrators.
	AccessTier2 AccessLevel = "d2"
	// AccessTier3 is visible to administrators only.
	AccessTier3 AccessLevel = "d3"
)

// DefaultAccessLevel is assigned when a document is created without a tier.
const DefaultAccessLevel = AccessTier1

// AccessLevels enumerates the valid tiers in ascending privilege order.
func AccessLevels() []AccessLevel {
	return []AccessLevel{AccessTier1, AccessTier2, AccessTier3}
}

// Valid reports whether the level belongs to the closed tier set.
func (l AccessLevel) Valid() bool {
	switch l {
	case AccessTier1, AccessTier2, AccessTier3:
		return true
	}
	return false
}

// Tier identifies a reader's privilege level. Tier filtering is a boundary
// concern: callers apply CanView after listing, the storage core never does.
type Tier string

const (
	TierReader     Tier = "n1"
	TierPrivileged Tier = "n2"
	TierAdmin      Tier = "n3"
)

// CanView reports whether a reader of this tier may see a document with the
// given access level. Untiered documents are visible to everyone.
func (t Tier) CanView(level AccessLevel) bool {
	switch t {
	case TierAdmin:
		return true
	case TierPrivileged:
		return level == "" || level == AccessTier1 || level == AccessTier2
	default:
		return level == "" || level == AccessTier1
	}
}

// Document is a fully parsed wiki document. Timestamp fields are opaque
// local-offset strings with second precision; Extra carries front-matter keys
// the store does not manage so they survive edits untouched.
type Document struct {
	Slug         string
	Title        string
	Description  string
	Category     string
	Tags         []string
	AccessLevel  AccessLevel
	IconURL      string
	CoverURL     string
	CreatedBy    string
	CreatedAt    string
	LastEditedBy string
	LastEditedAt string
	Body         string
	Extra        map[string]any
}

// WriteRequest captures a create or edit operation. A blank Slug means
// "create": the slug is derived from Title and must not collide with an
// active document. A populated Slug addresses an existing document and merges
// over it. Nil optional fields leave the stored value untouched.
type WriteRequest struct {
	Slug        string
	Title       string
	Body        string
	Author      string
	Description *string
	Category    *string
	Tags        []string
	AccessLevel *AccessLevel
	IconURL     *string
	CoverURL    *string
}

// ParseTagList splits the comma-separated tag form submitted by editors into
// a trimmed list, dropping empties. A nil result means "no tags supplied".
func ParseTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// fromMeta builds a Document out of decoded front matter.
func fromMeta(slug string, meta frontmatter.Meta, body string) *Document {
	return &Document{
		Slug:         slug,
		Title:        meta.Title,
		Description:  meta.Description,
		Category:     meta.Category,
		Tags:         append([]string(nil), meta.Tags...),
		AccessLevel:  AccessLevel(meta.AccessLevel),
		IconURL:      meta.IconURL,
		CoverURL:     meta.CoverURL,
		CreatedBy:    meta.CreatedBy,
		CreatedAt:    meta.CreatedAt,
		LastEditedBy: meta.LastEditedBy,
		LastEditedAt: meta.LastEditedAt,
		Body:         body,
		Extra:        meta.Extra,
	}
}
