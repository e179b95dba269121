// Package paths computes the on-disk locations a document slug can occupy.
// The resolver is pure: it performs no I/O and never fails, so callers can
// rank candidate locations before touching the filesystem.
package paths

import "path/filepath"

// Layout identifies one of the two supported on-disk document formats.
type Layout string

const (
	// LayoutCanonical is the directory-per-document format: docs/<slug>/doc.md.
	LayoutCanonical Layout = "canonical"
	// LayoutLegacy is the historical flat-file format: docs/<slug>.md. It is
	// read and migrated, never written.
	LayoutLegacy Layout = "legacy"
)

// DocumentFile is the metadata+body file inside a canonical document directory.
const DocumentFile = "doc.md"

// Candidate pairs a storage layout with the path a document would live at.
type Candidate struct {
	Layout Layout
	Path   string
}

// Resolver maps slugs to their candidate locations under a docs root.
type Resolver struct {
	docsDir string
}

// NewResolver builds a resolver rooted at docsDir.
func NewResolver(docsDir string) Resolver {
	return Resolver{docsDir: filepath.Clean(docsDir)}
}

// DocsDir returns the root directory holding every document.
func (r Resolver) DocsDir() string {
	return r.docsDir
}

// DocDir returns the canonical directory for slug: <docs>/<slug>.
func (r Resolver) DocDir(slug string) string {
	return filepath.Join(r.docsDir, slug)
}

// CanonicalFile returns the canonical metadata file: <docs>/<slug>/doc.md.
func (r Resolver) CanonicalFile(slug string) string {
	return filepath.Join(r.docsDir, slug, DocumentFile)
}

// LegacyFile returns the flat-file location: <docs>/<slug>.md.
func (r Resolver) LegacyFile(slug string) string {
	return filepath.Join(r.docsDir, slug+".md")
}

// Candidates returns the locations to probe for slug, highest priority first.
// The canonical layout always shadows the legacy one.
func (r Resolver) Candidates(slug string) []Candidate {
	return []Candidate{
		{Layout: LayoutCanonical, Path: r.CanonicalFile(slug)},
		{Layout: LayoutLegacy, Path: r.LegacyFile(slug)},
	}
}
