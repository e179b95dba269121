package document

import "github.com/goliatone/go-slug"

// Slugify derives the URL-safe identifier for a title using the default
// normalization rules.
func Slugify(title string) (string, error) {
	return slug.Normalize(title)
}

// IsValidSlug reports whether the value matches the generated-slug rules.
// Historical documents may carry slugs that predate these rules; the store
// accepts them as-is when addressed explicitly.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
