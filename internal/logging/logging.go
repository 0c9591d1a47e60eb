// Package logging configures the global zerolog logger. Logs go to a
// rotating file so the terminal UI keeps stdout and stderr to itself.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sant0-9/prompto/internal/config"
)

// Options controls where and how much is logged
type Options struct {
	Level string
	// File defaults to prompto.log in the config directory
	File string
	// Console also writes human-readable lines to stderr
	Console bool
}

// OptionsFromConfig reads the log section of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{Level: cfg.Log.Level, File: cfg.Log.File}
}

// ParseLevel maps a level name to zerolog, defaulting to info
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Setup installs the global logger and returns the closer of the log file
func Setup(opts Options) (io.Closer, error) {
	path := opts.File
	if path == "" {
		dir, err := config.ConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "prompto.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28,
	}

	var w io.Writer = file
	if opts.Console {
		console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		w = zerolog.MultiLevelWriter(file, console)
	}

	zerolog.SetGlobalLevel(ParseLevel(opts.Level))
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return file, nil
}

// Discard silences the global logger
func Discard() {
	log.Logger = zerolog.Nop()
}
