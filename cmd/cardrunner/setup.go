package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cardrunner/internal/cards"
	"github.com/vovakirdan/cardrunner/internal/config"
	"github.com/vovakirdan/cardrunner/internal/core"
	"github.com/vovakirdan/cardrunner/internal/game"
)

// settings is everything a command needs from the config layer.
type settings struct {
	cfg     config.Config
	game    game.Config
	catalog *cards.Catalog
}

// loadSettings loads the config, applies the difficulty preset and
// validates the result.
func loadSettings() (settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return settings{}, err
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return settings{}, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	config.ApplyPreset(&cfg, preset)

	if err := cfg.Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid config:\n%w", err)
	}

	g, err := cfg.Game()
	if err != nil {
		return settings{}, err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return settings{}, err
	}
	return settings{cfg: cfg, game: g, catalog: cat}, nil
}

// mustLoadSettings exits on a config error.
func mustLoadSettings() settings {
	s, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newLogger builds a logger at the configured level; --log-level wins.
func newLogger(w io.Writer, cfg config.Config, prefix string) *log.Logger {
	level := cfg.LogLevel()
	if flagLogLevel != "" {
		if l, err := log.ParseLevel(flagLogLevel); err == nil {
			level = l
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //#nosec G304 -- user-chosen log path
}
