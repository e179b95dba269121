// Package docwiki is the storage core of a self-hosted documentation wiki:
// filesystem-backed Markdown documents with structured front matter, a
// queryable listing, uploaded assets, and a time-boxed recycle bin. Web
// handlers compose the services through the Module facade; routing,
// sessions, and page rendering live with the host application.
package docwiki

import (
	"os"

	"docwiki/assets"
	"docwiki/document"
	"docwiki/internal/logging"
	"docwiki/internal/paths"
	"docwiki/listing"
	"docwiki/trash"
)

// DocumentStore exports the document store for consumers of the docwiki package.
type DocumentStore = document.Store

// ListingEngine exports the listing engine contract.
type ListingEngine = listing.Engine

// TrashManager exports the trash/retention manager contract.
type TrashManager = trash.Manager

// AssetManager exports the upload asset manager contract.
type AssetManager = assets.Manager

// AssetSaveRequest exports the upload request value type.
type AssetSaveRequest = assets.SaveRequest

// Summary exports the listing summary value type.
type Summary = listing.Summary

// Document exports the parsed document type.
type Document = document.Document

// Module is the top level storage runtime facade.
type Module struct {
	cfg      Config
	store    *document.Store
	listing  *listing.Engine
	trash    *trash.Manager
	assets   *assets.Manager
	provider logging.LoggerProvider
}

// Option customizes Module construction.
type Option func(*Module)

// WithLoggerProvider plugs a logging backend into every storage service.
func WithLoggerProvider(provider logging.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// New constructs the storage runtime from the provided configuration,
// creating the docs and trash directories when absent.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	module := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(module)
	}

	for _, dir := range []string{cfg.DocsDir(), cfg.TrashDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	resolver := paths.NewResolver(cfg.DocsDir())

	module.trash = trash.NewManager(trash.Config{
		Resolver: resolver,
		TrashDir: cfg.TrashDir(),
		Logger:   logging.TrashLogger(module.provider),
	})
	module.store = document.NewStore(document.Config{
		Resolver: resolver,
		Trash:    module.trash,
		Logger:   logging.DocumentLogger(module.provider),
	})
	module.listing = listing.NewEngine(listing.Config{
		Resolver:       resolver,
		PublicBasePath: cfg.PublicBasePath,
		Logger:         logging.ListingLogger(module.provider),
	})
	module.assets = assets.NewManager(assets.Config{
		Resolver:       resolver,
		PublicBasePath: cfg.PublicBasePath,
		Logger:         logging.AssetsLogger(module.provider),
	})

	return module, nil
}

// Documents returns the configured document store.
func (m *Module) Documents() *DocumentStore {
	return m.store
}

// Listing returns the configured listing engine.
func (m *Module) Listing() *ListingEngine {
	return m.listing
}

// Trash returns the configured trash/retention manager.
func (m *Module) Trash() *TrashManager {
	return m.trash
}

// Assets returns the configured asset manager.
func (m *Module) Assets() *AssetManager {
	return m.assets
}

// Sweep purges trash entries older than the configured retention window and
// returns the removed entry names.
func (m *Module) Sweep() ([]string, error) {
	return m.trash.Sweep(m.cfg.Retention.MaxAgeDays)
}
