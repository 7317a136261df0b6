// Package config loads stitchgrid settings from a .stitchgrid file and
// STITCHGRID_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "STITCHGRID"
	configName      = ".stitchgrid" // .yaml is implicit
	defaultPath     = "~/.stitchgrid.d"
	defaultAutosave = 30 * time.Second
)

type Config struct {
	// Path is the store directory.
	Path string
	// Autosave is the quiet period before a dirty project is saved. Zero
	// disables autosave.
	Autosave      time.Duration
	LogFile       string
	LogLevel      slog.Level
	StartMenu     bool
	Confirmations bool
	// File is the config file that was read, if any.
	File string
}

// BasePath lets a Config open the store directly.
func (c *Config) BasePath() string {
	return c.Path
}

// Load reads the config file found in $STITCHGRID_CONFIG_PATH, the working
// directory or the home directory. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("autosave", defaultAutosave.String())
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("start_menu", true)
	v.SetDefault("confirmations", true)

	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(envPrefix + "_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: path: %w", err)
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	autosave, err := parseAutosave(v.GetString("autosave"))
	if err != nil {
		return nil, err
	}

	level, err := ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, err
	}

	logFile := v.GetString("log_file")
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("config: log_file: %w", err)
		}
	}

	return &Config{
		Path:          path,
		Autosave:      autosave,
		LogFile:       logFile,
		LogLevel:      level,
		StartMenu:     v.GetBool("start_menu"),
		Confirmations: v.GetBool("confirmations"),
		File:          v.ConfigFileUsed(),
	}, nil
}

// parseAutosave accepts a duration ("45s"), a bare number of seconds, or
// "off".
func parseAutosave(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "off", "false", "0":
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("config: autosave %q is negative", s)
		}
		return d, nil
	}
	if d, err := time.ParseDuration(s + "s"); err == nil && d > 0 {
		return d, nil
	}
	return 0, fmt.Errorf("config: autosave %q is not a duration", s)
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log_level: %w", err)
	}
	return level, nil
}
