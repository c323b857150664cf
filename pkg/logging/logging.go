// Package logging wires zerolog for anek. Human readable records go to the
// console (stderr by default) and JSON records are appended to a log file
// under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options configures Setup.
type Options struct {
	// Verbosity is the number of -v flags. 0 logs warnings only.
	Verbosity int
	// Console receives the pretty printed records. Defaults to os.Stderr.
	Console io.Writer
	NoColor bool
	// File overrides the log file location. "-" disables the file.
	File string
}

var (
	mu      sync.Mutex
	logFile *os.File
)

// LevelFor maps a -v count to a zerolog level.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// Setup replaces the global logger. It can be called more than once; the
// previous log file is closed.
func Setup(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor || os.Getenv("NO_COLOR") != "",
	}}

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	path := opts.File
	if path == "" {
		path = FilePath()
	}
	var fileErr error
	if path != "-" {
		logFile, fileErr = openLogFile(path)
		if fileErr == nil {
			writers = append(writers, logFile)
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", path).Msg("Logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", path).Msg("Logger initialized")
}

// GetLogger returns the global logger tagged with a component name, such
// as "core.commands" or "config".
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// FilePath is $XDG_STATE_HOME/anek/anek.log, or anek.log in the working
// directory when no state directory is known.
func FilePath() string {
	xdg.Reload()
	if xdg.StateHome == "" {
		return "anek.log"
	}
	return filepath.Join(xdg.StateHome, "anek", "anek.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
