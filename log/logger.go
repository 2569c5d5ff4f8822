/*
Package log provides the structured logger used by the engine and the
command line tool.

The API follows the tendermint logger: every call takes a message and a list
of key value pairs. Output is logfmt produced by go-kit.
*/
package log

import (
	"io"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/swapsies/swapsies/errors"
)

// Logger is what any swapsies component expects to log to.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})

	// With returns a logger that always adds given key value pairs.
	With(keyvals ...interface{}) Logger
}

const msgKey = "_msg"

type kitLogger struct {
	srcLogger kitlog.Logger
}

var _ Logger = (*kitLogger)(nil)

// NewTMLogger returns a logger that writes logfmt lines to w. Wrap w with
// NewSyncWriter when the logger is shared between goroutines.
func NewTMLogger(w io.Writer) Logger {
	return &kitLogger{srcLogger: kitlog.NewLogfmtLogger(w)}
}

// NewSyncWriter returns a writer that is safe for concurrent use.
func NewSyncWriter(w io.Writer) io.Writer {
	return kitlog.NewSyncWriter(w)
}

func (l *kitLogger) Debug(msg string, keyvals ...interface{}) {
	l.log(level.Debug(l.srcLogger), msg, keyvals)
}

func (l *kitLogger) Info(msg string, keyvals ...interface{}) {
	l.log(level.Info(l.srcLogger), msg, keyvals)
}

func (l *kitLogger) Error(msg string, keyvals ...interface{}) {
	l.log(level.Error(l.srcLogger), msg, keyvals)
}

func (l *kitLogger) log(lg kitlog.Logger, msg string, keyvals []interface{}) {
	args := append([]interface{}{msgKey, msg}, keyvals...)
	_ = lg.Log(args...)
}

func (l *kitLogger) With(keyvals ...interface{}) Logger {
	return &kitLogger{srcLogger: kitlog.With(l.srcLogger, keyvals...)}
}

// NewFilter returns a logger that drops every entry below the given level.
// Accepted levels are "debug", "info", "error" and "none".
func NewFilter(l Logger, lvl string) (Logger, error) {
	kl, ok := l.(*kitLogger)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "cannot filter %T", l)
	}
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "info", "":
		opt = level.AllowInfo()
	case "error":
		opt = level.AllowError()
	case "none":
		opt = level.AllowNone()
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown log level %q", lvl)
	}
	return &kitLogger{srcLogger: level.NewFilter(kl.srcLogger, opt)}, nil
}

type nopLogger struct{}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (l nopLogger) With(...interface{}) Logger { return l }
