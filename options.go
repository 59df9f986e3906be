package warden

import (
	"log/slog"

	"github.com/wardenbot/warden/pkg/core"
)

// options holds the internal configuration for the service.
type options struct {
	store  core.NoteStore
	logger *slog.Logger
}

// Option defines a functional option for configuring the service.
type Option func(*options)

// WithLogger sets the logger for the service and its note store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a custom note store (e.g. a mock).
// If provided, the default JSON file store is skipped.
func WithStore(store core.NoteStore) Option {
	return func(o *options) {
		o.store = store
	}
}
