// Package logging builds the application logger from configuration.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vullk4n/gestao-de-emails/internal/model"
)

// ErrNilConfig is returned when no log configuration is given.
var ErrNilConfig = errors.New("nil log config")

// NewLogger returns a logger writing to stderr, or to cfg.Path when set.
// The returned file, if any, must be closed by the caller.
func NewLogger(cfg *model.LogConfig) (*log.Logger, *os.File, error) {
	if cfg == nil {
		return nil, nil, ErrNilConfig
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	if cfg.Level != "" {
		lvl, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing log level: %w", err)
		}
		logger.SetLevel(lvl)
		if lvl == log.DebugLevel {
			logger.SetReportCaller(true)
		}
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	case "", "text":
		logger.SetFormatter(log.TextFormatter)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	var f *os.File
	if cfg.Path != "" {
		var err error
		f, err = os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		logger.SetOutput(f)
	}

	return logger, f, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
