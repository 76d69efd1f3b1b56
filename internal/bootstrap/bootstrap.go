// Package bootstrap opens what every flowshow binary needs: configuration,
// the logger and the SQLite document.
package bootstrap

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"flowshow/internal/adapters/sqlite"
	"flowshow/internal/application/controller"
	"flowshow/internal/config"
	"flowshow/internal/logging"
)

// Runtime is the opened configuration, logger and document
type Runtime struct {
	Config *config.Config
	Log    zerolog.Logger
	Doc    *sqlite.Document

	logCloser io.Closer
}

// Override adjusts the loaded configuration before it is validated,
// e.g. from command-line flags
type Override func(*config.Config)

// Open loads configPath (missing files fall back to defaults), applies
// overrides, and opens the logger and the document
func Open(configPath string, overrides ...Override) (*Runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		o(cfg)
	}
	cfg.Document.Path = config.ExpandHome(cfg.Document.Path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, closer, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}

	doc, err := sqlite.Open(cfg.Document.Path)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	log.Debug().Str("document", doc.Path()).Msg("document opened")
	return &Runtime{Config: cfg, Log: log, Doc: doc, logCloser: closer}, nil
}

// ControllerOptions returns the controller options the configuration implies
func (r *Runtime) ControllerOptions() []controller.Option {
	return []controller.Option{
		controller.WithLogger(r.Log),
		controller.WithPanelSizes(r.Config.CollapsedSize(), r.Config.ExpandedSize()),
	}
}

// Close closes the document and the log file
func (r *Runtime) Close() error {
	return errors.Join(r.Doc.Close(), r.logCloser.Close())
}
