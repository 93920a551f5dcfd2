package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetLogLevel sets the log level for the application, logging to stderr.
func SetLogLevel() {
	SetLogOutput(os.Stderr)
}

// SetLogOutput sets the log level for the application and sends logs to w.
func SetLogOutput(w io.Writer) {
	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		slog.Error("Invalid log level", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToUpper(value) {
	case "":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown level %q", value)
	}
}

// OpenLogFile opens the file named by REVERSI_LOG_FILE for appending. Without it logs are
// discarded, which suits clients that own the terminal.
func OpenLogFile() (io.WriteCloser, error) {
	path := os.Getenv("REVERSI_LOG_FILE")
	if path == "" {
		return nopCloser{io.Discard}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
