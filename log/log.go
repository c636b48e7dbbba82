// Package log provides the structured logger used across zktree, a thin
// wrapper around zerolog in the style of the vocdoni sequencer's own log
// package: a small set of leveled, printf-style and keyword-style helpers
// backed by a single configurable global logger.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger zerolog.Logger

	// panicOnInvalidChars guards against accidentally logging control bytes
	// or invalid UTF-8 (e.g. raw field-element bytes formatted with %s by
	// mistake). Tests flip it off to exercise the code path without dying.
	panicOnInvalidChars = true

	// logTestWriter/logTestWriterName let tests and benchmarks redirect
	// output without touching a real stream.
	logTestWriter     io.Writer
	logTestWriterName = "test"
)

func init() {
	Init("info", "stderr", nil)
}

// Init (re)configures the global logger. level is a zerolog level name
// ("debug", "info", "warn", "error"); output selects the primary sink
// ("stdout", "stderr", the reserved name held in logTestWriterName, or a
// file path); extra writers additionally receive every log line.
func Init(level, output string, extra []io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer
	switch output {
	case "stdout":
		w = os.Stdout
	case "", "stderr":
		w = os.Stderr
	case logTestWriterName:
		if logTestWriter == nil {
			logTestWriter = io.Discard
		}
		w = logTestWriter
	default:
		f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			w = os.Stderr
		} else {
			w = f
		}
	}

	writers := append([]io.Writer{w}, extra...)
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger = zerolog.New(io.MultiWriter(writers...)).Level(lvl).With().Timestamp().Logger()
}

func checkChars(s string) {
	if !panicOnInvalidChars {
		return
	}
	if !utf8.ValidString(s) || strings.ContainsRune(s, 0xff) {
		panic(fmt.Sprintf("log: message contains invalid characters: %q", s))
	}
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkChars(msg)
	logger.Info().Msg(msg)
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkChars(msg)
	logger.Debug().Msg(msg)
}

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkChars(msg)
	logger.Warn().Msg(msg)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	checkChars(msg)
	logger.Error().Msg(msg)
}

// Error logs err at error level.
func Error(err error) {
	if err == nil {
		return
	}
	logger.Error().Msg(err.Error())
}

func withFields(ev *zerolog.Event, kv []any) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		ev = ev.Interface(key, kv[i+1])
	}
	return ev
}

// Debugw logs msg at debug level with alternating key/value pairs.
func Debugw(msg string, kv ...any) {
	withFields(logger.Debug(), kv).Msg(msg)
}

// Infow logs msg at info level with alternating key/value pairs.
func Infow(msg string, kv ...any) {
	withFields(logger.Info(), kv).Msg(msg)
}

// Warnw logs msg at warn level with alternating key/value pairs.
func Warnw(msg string, kv ...any) {
	withFields(logger.Warn(), kv).Msg(msg)
}
