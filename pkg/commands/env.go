package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stitchgrid/pkg/config"
	"stitchgrid/pkg/store"
)

// env is what every command that touches charts needs.
type env struct {
	cfg   *config.Config
	log   *slog.Logger
	store *store.Store
	close func()
}

// storePath overrides config.Path when set by --path.
var storePath string

// loadEnv reads the config, opens the log and the store. Interactive
// commands pass quietStderr so log lines without a log_file do not land
// on the full-screen UI.
func loadEnv(cmd *cobra.Command, quietStderr bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storePath != "" {
		cfg.Path, err = filepath.Abs(storePath)
		if err != nil {
			return nil, err
		}
	}

	var (
		w        io.Writer = cmd.ErrOrStderr()
		closeLog           = func() {}
	)
	switch {
	case cfg.LogFile != "":
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("log_file: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("log_file: %w", err)
		}
		w, closeLog = f, func() { f.Close() }
	case quietStderr:
		w = io.Discard
	}
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))

	st, err := store.Open(cfg, log)
	if err != nil {
		closeLog()
		return nil, err
	}
	log.Debug("store opened", "path", cfg.Path, "config", cfg.File)
	return &env{cfg: cfg, log: log, store: st, close: closeLog}, nil
}
