package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	serr "codecity/internal/errors"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is one structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out     io.Writer
	json    bool
	file    string
	maxSize int
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends entries to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per entry.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile mirrors entries into a size-rotated log file.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithMaxSize sets the rotation size of the log file in megabytes.
func WithMaxSize(mb int) Option {
	return func(o *options) { o.maxSize = mb }
}

// Logger writes structured entries through logrus.
type Logger struct {
	base   *logrus.Logger
	fields logrus.Fields
	file   *lumberjack.Logger
}

// NewLogger creates a logger. Without options it writes text to stdout.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stdout, maxSize: 10}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)

	l := &Logger{base: base, fields: logrus.Fields{}}
	out := o.out
	if o.file != "" {
		l.file = &lumberjack.Logger{
			Filename:   o.file,
			MaxSize:    o.maxSize,
			MaxBackups: 3,
			MaxAge:     28,
		}
		out = io.MultiWriter(o.out, l.file)
	}
	base.SetOutput(out)

	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return l
}

// Configure replaces the package logger.
func Configure(opts ...Option) {
	prev := logger
	logger = NewLogger(opts...)
	if prev != nil {
		prev.Close()
	}
}

// SetDebug turns debug entries on or off for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// With returns a logger that adds fields to every entry.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{base: l.base, fields: merged, file: l.file}
}

type ctxKey struct{}

// NewContext returns a context carrying fields for WithContext.
func NewContext(ctx context.Context, fields ...Field) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	prev, _ := ctx.Value(ctxKey{}).([]Field)
	all := append(append([]Field{}, prev...), fields...)
	return context.WithValue(ctx, ctxKey{}, all)
}

// WithContext adds the fields stored in ctx by NewContext.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	fields, _ := ctx.Value(ctxKey{}).([]Field)
	return l.With(fields...)
}

// emit writes one entry; skip is the number of frames between the caller
// being reported and emit.
func (l *Logger) emit(level logrus.Level, skip int, msg string) {
	if level == logrus.DebugLevel && !isDebug.Load() {
		return
	}
	entry := l.base.WithFields(l.fields)
	if _, file, line, ok := runtime.Caller(skip); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

func (l *Logger) Info(msg string)  { l.emit(logrus.InfoLevel, 2, msg) }
func (l *Logger) Warn(msg string)  { l.emit(logrus.WarnLevel, 2, msg) }
func (l *Logger) Error(msg string) { l.emit(logrus.ErrorLevel, 2, msg) }
func (l *Logger) Debug(msg string) { l.emit(logrus.DebugLevel, 2, msg) }

func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(logrus.InfoLevel, 2, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(logrus.WarnLevel, 2, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(logrus.ErrorLevel, 2, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emit(logrus.DebugLevel, 2, fmt.Sprintf(format, args...))
}

// Package-level helpers log through the configured logger.

func Info(msg string)  { logger.emit(logrus.InfoLevel, 2, msg) }
func Warn(msg string)  { logger.emit(logrus.WarnLevel, 2, msg) }
func Error(msg string) { logger.emit(logrus.ErrorLevel, 2, msg) }
func Debug(msg string) { logger.emit(logrus.DebugLevel, 2, msg) }

func Infof(format string, args ...interface{}) {
	logger.emit(logrus.InfoLevel, 2, fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...interface{}) {
	logger.emit(logrus.WarnLevel, 2, fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...interface{}) {
	logger.emit(logrus.ErrorLevel, 2, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...interface{}) {
	logger.emit(logrus.DebugLevel, 2, fmt.Sprintf(format, args...))
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger annotated with err. Typed
// application errors also contribute their kind and subject.
func LogWithError(err error) *Logger {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error())}

	var kinded interface{ Kind() serr.ErrorKind }
	if serr.As(err, &kinded) {
		fields = append(fields, F("error_kind", int(kinded.Kind())))
	}
	var fileErr *serr.FileError
	if serr.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *serr.ConfigError
	if serr.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var srcErr *serr.SourceError
	if serr.As(err, &srcErr) && srcErr.Source() != "" {
		fields = append(fields, F("source", srcErr.Source()))
	}
	var inputErr *serr.InvalidInputError
	if serr.As(err, &inputErr) {
		for k, v := range inputErr.Context() {
			fields = append(fields, F(k, v))
		}
	}
	return logger.With(fields...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).emit(logrus.ErrorLevel, 2, msg)
}
