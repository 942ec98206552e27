package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/brain-arcade/internal/config"
	"github.com/vovakirdan/brain-arcade/internal/registry"
	"github.com/vovakirdan/brain-arcade/internal/storage"
)

// Setting keys. Each is a root flag, a BRAIN_ARCADE_* variable and a key of
// ~/.brain-arcade/settings.yaml, in that order of precedence.
const (
	keyFPS      = "fps"
	keySeed     = "seed"
	keyDB       = "db"
	keyTiers    = "tiers"
	keyLogLevel = "log-level"
	keyLogFile  = "log-file"

	envPrefix    = "BRAIN_ARCADE"
	settingsDir  = ".brain-arcade"
	settingsName = "settings"
)

var (
	settings *viper.Viper
	tiers    config.Tiers
)

// loadSettings binds flags, environment and the optional settings file, then
// loads the difficulty table.
func loadSettings(cmd *cobra.Command, _ []string) error {
	v, err := newSettings(cmd)
	if err != nil {
		return err
	}
	settings = v

	t, err := config.Load(v.GetString(keyTiers))
	if err != nil {
		return err
	}
	tiers = t
	return nil
}

func newSettings(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(settingsName)
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, settingsDir))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings file: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

// newLogger builds the process logger. Without a log file, interactive
// commands stay silent so the alternate screen is not corrupted, while the
// server logs to stderr.
func newLogger(toStderr bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(settings.GetString(keyLogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var (
		w       io.Writer = io.Discard
		cleanup           = func() {}
	)
	switch path := settings.GetString(keyLogFile); {
	case path != "":
		f, err := os.OpenFile(expandHome(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
	case toStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "brain-arcade",
		Level:           level,
	})
	return logger, cleanup, nil
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(settings.GetString(keyDB))
	if err != nil {
		return nil, fmt.Errorf("open sessions database: %w", err)
	}
	return store, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// parseMode resolves a mode argument, reporting the valid choices on error.
func parseMode(s string) (config.Mode, error) {
	m, err := config.ParseMode(s)
	if err != nil {
		return "", fmt.Errorf("%w (run 'arcade list' to see available modes)", err)
	}
	if !registry.Exists(m) {
		return "", fmt.Errorf("no game registered for mode %q", m)
	}
	return m, nil
}
