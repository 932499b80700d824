package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/hoanghonghuy/aicommit/internal/redact"
)

// Logger wraps charmbracelet/log and masks API keys in everything it prints.
type Logger struct {
	logger  *log.Logger
	secrets []string
}

// New creates a Logger writing to stdout.
func New() *Logger {
	return NewWithWriter(os.Stdout)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return &Logger{logger: l}
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() *Logger {
	return NewWithWriter(io.Discard)
}

// Masked returns a Logger sharing the same output that also hides secrets (API keys).
// The receiver is left unchanged.
func (l *Logger) Masked(secrets ...string) *Logger {
	all := make([]string, 0, len(l.secrets)+len(secrets))
	all = append(all, l.secrets...)
	all = append(all, secrets...)
	return &Logger{logger: l.logger, secrets: all}
}

// SetDebug toggles debug output.
func (l *Logger) SetDebug(on bool) {
	if on {
		l.logger.SetLevel(log.DebugLevel)
		return
	}
	l.logger.SetLevel(log.InfoLevel)
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.logger.Debug(redact.String(msg, l.secrets...), l.clean(keyvals)...)
}

// Info logs an informational message with optional key-value pairs.
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.logger.Info(redact.String(msg, l.secrets...), l.clean(keyvals)...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.logger.Warn(redact.String(msg, l.secrets...), l.clean(keyvals)...)
}

// Error logs an error message; err is rendered with keys masked.
func (l *Logger) Error(msg string, err error, keyvals ...interface{}) {
	kv := append([]interface{}{"err", redact.Error(err, l.secrets...)}, l.clean(keyvals)...)
	l.logger.Error(redact.String(msg, l.secrets...), kv...)
}

func (l *Logger) clean(keyvals []interface{}) []interface{} {
	out := make([]interface{}, len(keyvals))
	for i, kv := range keyvals {
		switch v := kv.(type) {
		case string:
			out[i] = redact.String(v, l.secrets...)
		case error:
			out[i] = redact.Error(v, l.secrets...)
		default:
			out[i] = v
		}
	}
	return out
}
