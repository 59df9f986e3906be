package warden

import (
	"log/slog"

	"github.com/wardenbot/warden/pkg/adapters/fs"
	"github.com/wardenbot/warden/pkg/core"
	"github.com/wardenbot/warden/pkg/dataset"
)

// Version exposes the version of the tool.
const Version = "0.1.0"

// Service wires the durable note store and the dataset snapshots behind a
// single handle for the command layer. It keeps no cross-call state: note
// operations re-read the document under the lock, and every Snapshot call
// reloads the dataset in full.
type Service struct {
	cfg    Config
	store  core.NoteStore
	logger *slog.Logger
}

// New creates a Service from the given configuration.
func New(cfg Config, opts ...Option) *Service {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		store = fs.NewStore(fs.Config{
			Path:        cfg.NotesPath,
			LockTimeout: cfg.LockTimeout.Duration,
			Logger:      o.logger,
		})
	}

	return &Service{
		cfg:    cfg,
		store:  store,
		logger: o.logger,
	}
}

// Notes returns the durable note store.
func (s *Service) Notes() core.NoteStore {
	return s.store
}

// Snapshot loads a fresh profile index from the dataset documents.
// Rebuilt per call; the documents are replaced wholesale between scrape
// runs, so no incremental refresh is attempted.
func (s *Service) Snapshot() (*dataset.Snapshot, error) {
	if s.logger != nil {
		s.logger.Debug("loading dataset snapshot", "users", s.cfg.UsersPath, "catalog", s.cfg.CatalogPath)
	}
	return dataset.Load(s.cfg.UsersPath, s.cfg.CatalogPath)
}

// Whitelist loads the caller attribution map.
func (s *Service) Whitelist() (Whitelist, error) {
	return LoadWhitelist(s.cfg.WhitelistPath)
}
