package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// New creates a new logger instance writing to stdout
func New(level, format string) *logrus.Logger {
	logger := logrus.New()

	// Set log level
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set output
	logger.SetOutput(os.Stdout)

	// Set formatter
	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	}

	return logger
}

// FileName is the daily log file name for day, e.g. 15-10-2026.log
func FileName(day time.Time) string {
	return day.Format("02-01-2006") + ".log"
}

// NewWithFile creates a logger writing to stdout and to the daily file under
// dir. The caller closes the returned file.
func NewWithFile(level, format, dir string, now time.Time) (*logrus.Logger, *os.File, error) {
	if dir == "" {
		return nil, nil, fmt.Errorf("log directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, FileName(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	logger := New(level, format)
	logger.SetOutput(io.MultiWriter(os.Stdout, f))
	logger.WithField("file", path).Info("Log system started")
	return logger, f, nil
}

// DeleteOldLogs removes *.log files in dir last modified more than days
// before now. It returns how many files were removed.
func DeleteOldLogs(logger *logrus.Logger, dir string, days int, now time.Time) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("days must be positive, got %d", days)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading log directory %s: %w", dir, err)
	}

	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return removed, err
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			logger.WithError(err).Error("Failed to delete old log")
			return removed, err
		}
		removed++
		logger.WithField("file", e.Name()).Info("Old log removed")
	}

	logger.WithField("removed", removed).Info("Log cleanup finished")
	return removed, nil
}
