// Package log provides context-aware logging for courses.
//
// User-facing diagnostics go through Printf/Println. Structured events go
// through Debug/Warn/Error, backed by zerolog's console writer. Both
// write to the same writer, normally stderr, so stdout stays clean for data.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

type ctxKey struct{}

// Logger provides output and leveled structured logging.
type Logger struct {
	out     io.Writer
	zl      zerolog.Logger
	verbose bool
	quiet   bool
}

// New creates a new logger.
// verbose enables debug events, quiet suppresses everything.
func New(out io.Writer, verbose, quiet bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.Disabled
	}

	cw := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(out),
	}

	return &Logger{
		out:     out,
		zl:      zerolog.New(cw).Level(level).With().Timestamp().Logger(),
		verbose: verbose,
		quiet:   quiet,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext retrieves the logger from context.
// Returns a no-op logger if none is attached.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return &Logger{out: io.Discard, zl: zerolog.Nop(), quiet: true}
}

// Printf writes formatted output.
func (l *Logger) Printf(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format, args...)
}

// Println writes a line of output.
func (l *Logger) Println(args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.out, args...)
}

// Debug logs a structured event visible with --verbose.
// kv alternates string keys and values.
func (l *Logger) Debug(msg string, kv ...any) {
	l.zl.Debug().Fields(kv).Msg(msg)
}

// Warn logs a structured warning.
func (l *Logger) Warn(msg string, kv ...any) {
	l.zl.Warn().Fields(kv).Msg(msg)
}

// Error logs err with a message.
func (l *Logger) Error(err error, msg string, kv ...any) {
	l.zl.Error().Err(err).Fields(kv).Msg(msg)
}

// With returns a logger that adds kv to every structured event.
func (l *Logger) With(kv ...any) *Logger {
	child := *l
	child.zl = l.zl.With().Fields(kv).Logger()
	return &child
}

// Verbose returns true if verbose mode is enabled.
func (l *Logger) Verbose() bool {
	return l.verbose
}

// Quiet returns true if all output is suppressed.
func (l *Logger) Quiet() bool {
	return l.quiet
}

// Writer returns the underlying writer.
func (l *Logger) Writer() io.Writer {
	return l.out
}
