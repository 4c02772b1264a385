package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "zendesk-analytics.log"

// Init initializes the global logger with dual sinks: os.Stderr and a rotating file.
// stdout is left untouched because the MCP stdio transport owns it.
func Init(verbose bool) {
	// Init runs before config.Load, so LOGS_FOLDER has to be read from the binary's .env here.
	exePath, err := os.Executable()
	if err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	zerolog.SetGlobalLevel(level(verbose, os.Getenv("LOG_LEVEL")))

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		if err == nil {
			logDir = filepath.Join(filepath.Dir(exePath), "logs")
		} else {
			logDir = "logs"
		}
	}

	fileWriter, ferr := rotatingFile(logDir)
	if ferr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", ferr)
		os.Exit(1)
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(consoleWriter(os.Stderr), fileWriter)).
		With().
		Timestamp().
		Logger()
}

// level picks the global level: LOG_LEVEL wins, then --verbose, then info.
func level(verbose bool, envLevel string) zerolog.Level {
	if envLevel != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(envLevel)); err == nil && lvl != zerolog.NoLevel {
			return lvl
		}
	}
	if verbose {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func consoleWriter(out *os.File) io.Writer {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		return out
	}
	isTerminal := isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}
}

func rotatingFile(logDir string) (io.Writer, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}

	testFile := filepath.Join(logDir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return nil, fmt.Errorf("log directory %q is not writable: %w", logDir, err)
	}
	_ = os.Remove(testFile)

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    16, // megabytes
		MaxBackups: 32,
		MaxAge:     90, // days
		Compress:   true,
	}, nil
}
