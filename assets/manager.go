// Package assets stores uploaded files inside a document's directory with
// collision-resistant names. Assets share the document directory's lifecycle:
// trashing the document carries its assets along.
package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"docwiki/document"
	"docwiki/internal/logging"
	"docwiki/internal/paths"
)

var (
	ErrTargetRequired  = errors.New("assets: a document slug or title is required")
	ErrFilenameInvalid = errors.New("assets: filename is invalid")
)

const (
	codeTargetRequired  = "ASSET_TARGET_REQUIRED"
	codeFilenameInvalid = "ASSET_FILENAME_INVALID"
	codeSaveFailed      = "ASSET_SAVE_FAILED"
)

// Config wires a Manager.
type Config struct {
	Resolver paths.Resolver
	// PublicBasePath prefixes the URL returned for stored assets.
	PublicBasePath string
	Logger         logging.Logger
}

// SaveRequest describes one upload. Either Slug or Title must be set; the
// title form is slugified to locate the document directory. When
// FilenameOverride is empty the stored name is derived from Filename as
// <slugified-base>-<random suffix><original extension>.
type SaveRequest struct {
	Slug             string
	Title            string
	Filename         string
	FilenameOverride string
	Content          io.Reader
}

// Manager writes and removes files under document directories.
type Manager struct {
	res        paths.Resolver
	publicBase string
	log        logging.Logger
}

// NewManager constructs an asset manager.
func NewManager(cfg Config) *Manager {
	log := cfg.Logger
	if log == nil {
		log = logging.NoOp()
	}
	return &Manager{
		res:        cfg.Resolver,
		publicBase: strings.TrimRight(cfg.PublicBasePath, "/"),
		log:        log,
	}
}

// Save streams the upload into the document's directory and returns the
// public URL it will be served under.
func (m *Manager) Save(req SaveRequest) (string, error) {
	base := strings.TrimSpace(req.Slug)
	if base == "" {
		derived, err := document.Slugify(req.Title)
		if err != nil || derived == "" {
			return "", goerrors.Wrap(ErrTargetRequired, goerrors.CategoryValidation, "upload needs a document slug or title").
				WithTextCode(codeTargetRequired)
		}
		base = derived
	}
	if !validComponent(base) {
		return "", goerrors.Wrap(ErrTargetRequired, goerrors.CategoryValidation, fmt.Sprintf("invalid upload target %q", base)).
			WithTextCode(codeTargetRequired)
	}

	name := strings.TrimSpace(req.FilenameOverride)
	if name == "" {
		name = storedName(req.Filename)
	}
	if !validComponent(name) {
		return "", goerrors.Wrap(ErrFilenameInvalid, goerrors.CategoryValidation, fmt.Sprintf("invalid asset filename %q", name)).
			WithTextCode(codeFilenameInvalid)
	}

	dir := m.res.DocDir(base)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", saveError(name, err)
	}
	if err := atomic.WriteFile(filepath.Join(dir, name), req.Content); err != nil {
		return "", saveError(name, err)
	}

	m.log.Info("assets.save", "slug", base, "filename", name)
	return m.publicBase + "/" + base + "/" + name, nil
}

// Delete removes one file from a document's directory. Removing an absent
// file returns false without error; the document file itself cannot be
// removed this way.
func (m *Manager) Delete(slug, filename string) (bool, error) {
	slug = strings.TrimSpace(slug)
	filename = strings.TrimSpace(filename)
	if !validComponent(slug) || !validComponent(filename) || filename == paths.DocumentFile {
		return false, goerrors.Wrap(ErrFilenameInvalid, goerrors.CategoryValidation, fmt.Sprintf("invalid asset path %q/%q", slug, filename)).
			WithTextCode(codeFilenameInvalid)
	}

	path := filepath.Join(m.res.DocDir(slug), filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, saveError(filename, err)
	}

	m.log.Info("assets.delete", "slug", slug, "filename", filename)
	return true, nil
}

// storedName builds a collision-resistant stored filename: the slugified
// original base name, a short random disambiguator, and the lowercased
// original extension.
func storedName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	stem := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))

	safe, err := document.Slugify(stem)
	if err != nil || safe == "" {
		safe = "file"
	}

	id := uuid.New()
	return fmt.Sprintf("%s-%x%s", safe, id[:3], ext)
}

func saveError(name string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryOperation, fmt.Sprintf("storing asset %q failed", name)).
		WithTextCode(codeSaveFailed)
}

func validComponent(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
