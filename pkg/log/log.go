package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent = 2  // spaces to indent file entries
	nameWidth  = 30 // base width for filename
)

// 🎯 FileReport represents the outcome of transforming one file
type FileReport struct {
	Path            string // file path relative to the source directory
	Transformed     int    // defines rewritten
	AlreadyMigrated int    // defines already routed through the env lookup
	Skipped         int    // defines with unrecognized values
	Err             error  // set when the file could not be processed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileReport formats a per-file line for display
func (l *Logger) formatFileReport(r FileReport) string {
	var symbol rune
	var symbolColor color.Attribute
	var detail string
	switch {
	case r.Err != nil:
		symbol = '✗'
		symbolColor = color.FgRed
		detail = r.Err.Error()
	case r.Transformed > 0:
		symbol = '✓'
		symbolColor = color.FgGreen
		detail = fmt.Sprintf("%d changes", r.Transformed)
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		detail = "no changes needed"
	}

	if r.Err == nil && r.Skipped > 0 {
		detail += color.New(color.Faint).Sprintf(" (%d skipped)", r.Skipped)
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, r.Path),
		detail)
}

// 📝 LogFileReport logs the outcome of one file
func (l *Logger) LogFileReport(ctx context.Context, r FileReport) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileReport(r))

	ev := l.zlog.Info()
	if r.Err != nil {
		ev = l.zlog.Error().Err(r.Err)
	}
	ev.Str("file", r.Path).
		Int("transformed", r.Transformed).
		Int("already_migrated", r.AlreadyMigrated).
		Int("skipped", r.Skipped).
		Msg("file processed")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("phpcfgenv")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Headerf logs a formatted header
func (l *Logger) Headerf(format string, args ...interface{}) {
	l.Header(fmt.Sprintf(format, args...))
}
