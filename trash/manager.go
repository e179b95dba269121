// Package trash relocates soft-deleted documents into a holding area and
// enforces the retention window. Entries are named <slug>_<UTC timestamp> so
// multiple deleted generations of the same slug never collide.
package trash

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"docwiki/internal/logging"
	"docwiki/internal/paths"
)

// TimestampLayout is the deletion-time suffix appended to trashed units,
// UTC with second precision.
const TimestampLayout = "2006-01-02_15-04-05"

// Entry describes one unit sitting in the holding area.
type Entry struct {
	Name      string
	DeletedAt time.Time
}

// Config wires a Manager.
type Config struct {
	Resolver paths.Resolver
	TrashDir string
	Logger   logging.Logger
	// TimeFunc overrides the clock, mainly for tests.
	TimeFunc func() time.Time
}

// Manager owns every unit inside the trash directory until it is restored or
// purged. The sweep only ever touches the holding area, so it is safe to run
// concurrently with unrelated document operations.
type Manager struct {
	res      paths.Resolver
	trashDir string
	log      logging.Logger
	now      func() time.Time
}

// NewManager constructs a trash manager over the given holding area.
func NewManager(cfg Config) *Manager {
	log := cfg.Logger
	if log == nil {
		log = logging.NoOp()
	}
	now := cfg.TimeFunc
	if now == nil {
		now = time.Now
	}
	return &Manager{
		res:      cfg.Resolver,
		trashDir: filepath.Clean(cfg.TrashDir),
		log:      log,
		now:      now,
	}
}

// SoftDelete moves the document's whole storage unit into the holding area.
// It returns false when neither a canonical directory nor a legacy file
// exists for the slug.
func (m *Manager) SoftDelete(slug string) (bool, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || !validName(slug) {
		return false, nameInvalidError(slug)
	}

	if err := os.MkdirAll(m.trashDir, 0o755); err != nil {
		return false, moveError(slug, err)
	}

	stamp := m.now().UTC().Format(TimestampLayout)

	docDir := m.res.DocDir(slug)
	if info, err := os.Stat(docDir); err == nil && info.IsDir() {
		name := slug + "_" + stamp
		if err := os.Rename(docDir, filepath.Join(m.trashDir, name)); err != nil {
			return false, moveError(name, err)
		}
		m.log.Info("trash.soft_delete", "slug", slug, "entry", name)
		return true, nil
	}

	legacy := m.res.LegacyFile(slug)
	if _, err := os.Stat(legacy); err == nil {
		name := slug + "_" + stamp + ".md"
		if err := os.Rename(legacy, filepath.Join(m.trashDir, name)); err != nil {
			return false, moveError(name, err)
		}
		m.log.Info("trash.soft_delete", "slug", slug, "entry", name, "layout", "legacy")
		return true, nil
	}

	return false, nil
}

// Restore moves a trash entry back to the document's canonical location. It
// fails with a conflict when any active document already occupies the base
// slug, leaving both the entry and the active document untouched. Entries
// trashed from the legacy flat-file layout are restored into the canonical
// directory layout.
func (m *Manager) Restore(name string) error {
	name = strings.TrimSpace(name)
	if !validName(name) {
		return nameInvalidError(name)
	}

	src := filepath.Join(m.trashDir, name)
	info, err := os.Stat(src)
	if err != nil {
		return entryNotFoundError(name)
	}

	slug := BaseSlug(name)
	if m.slugActive(slug) {
		return restoreConflictError(slug)
	}

	if info.IsDir() {
		if err := os.Rename(src, m.res.DocDir(slug)); err != nil {
			return moveError(name, err)
		}
	} else {
		if err := os.MkdirAll(m.res.DocDir(slug), 0o755); err != nil {
			return moveError(name, err)
		}
		if err := os.Rename(src, m.res.CanonicalFile(slug)); err != nil {
			return moveError(name, err)
		}
	}

	m.log.Info("trash.restore", "entry", name, "slug", slug)
	return nil
}

// Purge permanently removes one trash entry. It is idempotent: purging an
// absent entry returns false without error.
func (m *Manager) Purge(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if !validName(name) {
		return false, nameInvalidError(name)
	}

	path := filepath.Join(m.trashDir, name)
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	if err := os.RemoveAll(path); err != nil {
		return false, moveError(name, err)
	}
	m.log.Info("trash.purge", "entry", name)
	return true, nil
}

// Sweep scans the holding area once and removes entries whose age, computed
// from the last-modified time in truncated whole days, is at or beyond
// maxAgeDays. Individual removal failures are logged and skipped so one bad
// entry never aborts the sweep. The removed entry names are returned.
func (m *Manager) Sweep(maxAgeDays int) ([]string, error) {
	entries, err := os.ReadDir(m.trashDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, moveError(m.trashDir, err)
	}

	now := m.now().UTC()
	var removed []string

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			m.log.Warn("trash.sweep.stat_failed", "entry", entry.Name(), "error", err)
			continue
		}

		ageDays := int(now.Sub(info.ModTime().UTC()).Hours() / 24)
		if ageDays < maxAgeDays {
			continue
		}

		if err := os.RemoveAll(filepath.Join(m.trashDir, entry.Name())); err != nil {
			m.log.Warn("trash.sweep.remove_failed", "entry", entry.Name(), "error", err)
			continue
		}
		removed = append(removed, entry.Name())
	}

	m.log.Info("trash.sweep", "max_age_days", maxAgeDays, "removed", len(removed))
	return removed, nil
}

// Entries lists the holding area sorted by name, with deletion times taken
// from each unit's last-modified timestamp.
func (m *Manager) Entries() ([]Entry, error) {
	dirEntries, err := os.ReadDir(m.trashDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, moveError(m.trashDir, err)
	}

	out := make([]Entry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: entry.Name(), DeletedAt: info.ModTime().UTC()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// slugActive reports whether any active document occupies the slug: the
// canonical directory, the canonical file, or the legacy flat file.
func (m *Manager) slugActive(slug string) bool {
	if _, err := os.Stat(m.res.DocDir(slug)); err == nil {
		return true
	}
	if _, err := os.Stat(m.res.CanonicalFile(slug)); err == nil {
		return true
	}
	if _, err := os.Stat(m.res.LegacyFile(slug)); err == nil {
		return true
	}
	return false
}

// BaseSlug derives the original slug from a trash entry name by stripping the
// fixed-width `_<timestamp>` suffix from the end. Parsing from the end keeps
// slugs that themselves contain underscores intact. A name without a valid
// suffix is returned whole (minus any .md extension).
func BaseSlug(name string) string {
	name = strings.TrimSuffix(name, ".md")

	suffixLen := len(TimestampLayout) + 1
	if len(name) <= suffixLen {
		return name
	}

	cut := len(name) - suffixLen
	if name[cut] != '_' {
		return name
	}
	if _, err := time.Parse(TimestampLayout, name[cut+1:]); err != nil {
		return name
	}
	return name[:cut]
}

// validName rejects empty names and anything that could escape the holding
// area through separators or parent references.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
