// Package logging provides the program-wide leveled logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"vidgrab/internal/domain/consts"

	"github.com/rs/zerolog"
)

var (
	// Level is the debug verbosity (0 - 5). D messages above it are dropped.
	Level int

	mu     sync.RWMutex
	logger = newLogger(consoleWriter(os.Stdout))
)

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetupLogging sets the debug level and, when logFilePath is not empty,
// mirrors console output into the log file.
//
// The returned file (possibly nil) should be closed by the caller on exit.
func SetupLogging(logFilePath string, level int) (*os.File, error) {
	Level = level

	if logFilePath == "" {
		SetOutput(consoleWriter(os.Stdout))
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), consts.PermsGenericDir); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, consts.PermsLogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}

	SetOutput(zerolog.MultiLevelWriter(consoleWriter(os.Stdout), f))
	logger.Info().Msgf("=========== %v ===========", time.Now().Format(time.RFC1123Z))
	return f, nil
}

// SetOutput replaces the log destination.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// Writer returns an io.Writer which logs each write as a line, for adapting
// standard library loggers.
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// E logs an error with the calling function, file and line.
func E(format string, args ...any) {
	l := current()
	ev := l.Error()
	withCaller(ev).Msgf(format, args...)
}

// W logs a warning.
func W(format string, args ...any) {
	l := current()
	l.Warn().Msgf(format, args...)
}

// I logs an info message.
func I(format string, args ...any) {
	l := current()
	l.Info().Msgf(format, args...)
}

// S logs a success message.
func S(format string, args ...any) {
	l := current()
	l.Info().Bool("success", true).Msgf(format, args...)
}

// D logs a debug message if l is within the configured debug level.
func D(l int, format string, args ...any) {
	if l > Level {
		return
	}
	lg := current()
	ev := lg.Debug().Int("lvl", l)
	withCaller(ev).Msgf(format, args...)
}

// P logs a plain message without level decoration.
func P(format string, args ...any) {
	l := current()
	l.Log().Msgf(format, args...)
}

func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// withCaller attaches the function, file and line two frames up (the caller of E or D).
func withCaller(ev *zerolog.Event) *zerolog.Event {
	pc, file, line, ok := runtime.Caller(2)
	if !ok {
		return ev
	}
	funcName := "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = filepath.Base(fn.Name())
	}
	return ev.
		Str("func", funcName).
		Str("file", filepath.Base(file)+":"+strconv.Itoa(line))
}
