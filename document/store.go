package document

import (
	"bytes"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/natefinch/atomic"

	"docwiki/internal/frontmatter"
	"docwiki/internal/logging"
	"docwiki/internal/paths"
	"docwiki/trash"
)

// descriptionBudget caps the description synthesized from a new body when the
// editor supplies none.
const descriptionBudget = 300

// Config wires a Store.
type Config struct {
	Resolver paths.Resolver
	Trash    *trash.Manager
	Logger   logging.Logger
	// TimeFunc overrides the clock, mainly for tests.
	TimeFunc func() time.Time
}

// Store performs CRUD over filesystem-backed documents. It reconciles the
// canonical directory layout with the legacy flat-file layout, migrating
// legacy documents to canonical form the first time they are read or written.
type Store struct {
	res   paths.Resolver
	trash *trash.Manager
	log   logging.Logger
	now   func() time.Time
}

// NewStore constructs a document store.
func NewStore(cfg Config) *Store {
	log := cfg.Logger
	if log == nil {
		log = logging.NoOp()
	}
	now := cfg.TimeFunc
	if now == nil {
		now = time.Now
	}
	return &Store{
		res:   cfg.Resolver,
		trash: cfg.Trash,
		log:   log,
		now:   now,
	}
}

// Read returns the document stored under slug, checking the canonical layout
// first and falling back to the legacy flat file. A legacy hit is copied into
// canonical form before parsing, an idempotent one-time migration; the legacy
// file is left in place for manual cleanup but the canonical copy becomes the
// source of truth for every subsequent read. Parse failures of an existing
// file are logged and reported as not-found so one broken record cannot take
// the caller down.
func (s *Store) Read(slug string) (*Document, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || !validPathComponent(slug) {
		return nil, notFoundError(slug)
	}

	canonical := s.res.CanonicalFile(slug)
	if raw, err := os.ReadFile(canonical); err == nil {
		return s.parseOrNotFound(slug, canonical, raw)
	}

	legacy := s.res.LegacyFile(slug)
	raw, err := os.ReadFile(legacy)
	if err != nil {
		return nil, notFoundError(slug)
	}

	if err := s.migrateLegacy(slug, raw); err != nil {
		// Migration is best-effort: serve the legacy copy and retry the
		// copy on the next read.
		s.log.Warn("document.read.migrate_failed", "slug", slug, "error", err)
	}
	return s.parseOrNotFound(slug, legacy, raw)
}

// Write creates or edits a document. A blank req.Slug derives the slug from
// the title and fails with a conflict when that slug is already active; a
// populated req.Slug always succeeds by merging over the stored metadata.
// Creation fields are preserved across edits, last-editor fields are always
// refreshed, and optional fields left nil keep their stored values. The full
// payload is serialized in memory and written atomically so a crashed write
// never leaves a half-written document behind.
func (s *Store) Write(req WriteRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}

	slug := strings.TrimSpace(req.Slug)
	create := slug == ""
	if create {
		derived, err := Slugify(req.Title)
		if err != nil || derived == "" {
			return "", slugInvalidError(req.Title, err)
		}
		slug = derived
		if s.exists(slug) {
			return "", slugConflictError(slug)
		}
	} else if !validPathComponent(slug) {
		return "", slugInvalidError(slug, nil)
	}

	meta := s.loadExisting(slug)
	now := s.now().Format(frontmatter.TimeLayout)

	if title := strings.TrimSpace(req.Title); title != "" {
		meta.Title = title
	} else if meta.Title == "" {
		meta.Title = slug
	}

	if req.AccessLevel != nil {
		meta.AccessLevel = string(*req.AccessLevel)
	} else if meta.AccessLevel == "" {
		meta.AccessLevel = string(DefaultAccessLevel)
	}

	if req.Description != nil {
		meta.Description = *req.Description
	} else if strings.TrimSpace(meta.Description) == "" {
		meta.Description = synthesizeDescription(req.Body)
	}

	if req.Category != nil {
		meta.Category = *req.Category
	}
	if req.IconURL != nil {
		meta.IconURL = *req.IconURL
	}
	if req.CoverURL != nil {
		meta.CoverURL = *req.CoverURL
	}
	if req.Tags != nil {
		meta.Tags = trimTags(req.Tags)
	}

	if meta.CreatedAt == "" {
		meta.CreatedAt = now
	}
	if meta.CreatedBy == "" {
		meta.CreatedBy = req.Author
	}
	meta.LastEditedAt = now
	meta.LastEditedBy = req.Author

	payload, err := frontmatter.Serialize(meta, req.Body)
	if err != nil {
		return "", writeError(slug, err)
	}

	if err := os.MkdirAll(s.res.DocDir(slug), 0o755); err != nil {
		return "", writeError(slug, err)
	}
	if err := atomic.WriteFile(s.res.CanonicalFile(slug), bytes.NewReader(payload)); err != nil {
		return "", writeError(slug, err)
	}

	action := "update"
	if create {
		action = "create"
	}
	s.log.Info("document.write", "slug", slug, "action", action, "author", req.Author)
	return slug, nil
}

// Delete soft-deletes the document by moving its storage unit to the trash
// holding area. It returns whether a unit existed to move.
func (s *Store) Delete(slug string) (bool, error) {
	return s.trash.SoftDelete(slug)
}

// Exists reports whether any active storage unit occupies the slug.
func (s *Store) Exists(slug string) bool {
	slug = strings.TrimSpace(slug)
	return slug != "" && validPathComponent(slug) && s.exists(slug)
}

func (s *Store) exists(slug string) bool {
	if _, err := os.Stat(s.res.DocDir(slug)); err == nil {
		return true
	}
	if _, err := os.Stat(s.res.LegacyFile(slug)); err == nil {
		return true
	}
	return false
}

// loadExisting fetches stored metadata for a merge, preferring canonical over
// legacy. Corrupt metadata degrades to the lenient parse so an edit can still
// overwrite a broken record.
func (s *Store) loadExisting(slug string) frontmatter.Meta {
	for _, candidate := range s.res.Candidates(slug) {
		raw, err := os.ReadFile(candidate.Path)
		if err != nil {
			continue
		}
		meta, _ := frontmatter.ParseLenient(raw)
		return meta
	}
	return frontmatter.Meta{}
}

func (s *Store) migrateLegacy(slug string, raw []byte) error {
	if err := os.MkdirAll(s.res.DocDir(slug), 0o755); err != nil {
		return err
	}
	if err := atomic.WriteFile(s.res.CanonicalFile(slug), bytes.NewReader(raw)); err != nil {
		return err
	}
	s.log.Info("document.read.migrate", "slug", slug)
	return nil
}

func (s *Store) parseOrNotFound(slug, path string, raw []byte) (*Document, error) {
	meta, body, err := frontmatter.Parse(raw)
	if err != nil {
		s.log.Error("document.read.parse_failed", "slug", slug, "path", path, "error", err)
		return nil, notFoundError(slug)
	}
	return fromMeta(slug, meta, body), nil
}

func (r WriteRequest) validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.When(strings.TrimSpace(r.Slug) == "").Error("title is required to create a document")),
		validation.Field(&r.AccessLevel, validation.By(validAccessLevel)),
	)
	if err == nil {
		return nil
	}
	if strings.TrimSpace(r.Slug) == "" && strings.TrimSpace(r.Title) == "" {
		return titleRequiredError()
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid write request").
		WithTextCode("DOCUMENT_REQUEST_INVALID")
}

func validAccessLevel(value any) error {
	level, ok := value.(*AccessLevel)
	if !ok || level == nil {
		return nil
	}
	if !level.Valid() {
		return validation.NewError("access_level_invalid", "access level is not one of d1, d2, d3")
	}
	return nil
}

func synthesizeDescription(body string) string {
	trimmed := strings.TrimSpace(body)
	runes := []rune(trimmed)
	if len(runes) > descriptionBudget {
		return string(runes[:descriptionBudget])
	}
	return trimmed
}

func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// validPathComponent rejects slugs that could escape the docs directory.
func validPathComponent(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}
