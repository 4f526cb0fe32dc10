package log

import (
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Logger is a thin wrapper around zap.Logger.
// The default logger is process-wide and may be replaced via ResetDefault.
type Logger struct {
	l     *zap.Logger
	level Level
}

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

type Field = zap.Field

var (
	String     = zap.String
	Bool       = zap.Bool
	Int        = zap.Int
	Int32      = zap.Int32
	Int64      = zap.Int64
	Uint32     = zap.Uint32
	Float64    = zap.Float64
	Time       = zap.Time
	Duration   = zap.Duration
	Any        = zap.Any
	ErrorField = zap.Error
)

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

type Option interface {
	apply(*options)
}

type options struct {
	withCaller bool
	callerSkip int
	filters    string
	zapOpts    []zap.Option
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

// WithCaller controls whether log entries are annotated with the call site.
func WithCaller(enabled bool) Option {
	return optionFunc(func(o *options) { o.withCaller = enabled })
}

// AddCallerSkip compensates for wrapper functions when resolving the call site.
func AddCallerSkip(skip int) Option {
	return optionFunc(func(o *options) { o.callerSkip = skip })
}

// WithFilters installs zapfilter rules (e.g. "debug:timing,interval.*")
// limiting output to matching named loggers.
func WithFilters(rules string) Option {
	return optionFunc(func(o *options) { o.filters = rules })
}

// New creates a Logger with JSON output.
func New(out io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return build(zapcore.NewJSONEncoder(cfg), out, level, opts...)
}

// DevLogger creates a Logger with human readable console output.
func DevLogger(out io.Writer, level Level, opts ...Option) *Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.StampMilli)
	return build(zapcore.NewConsoleEncoder(cfg), out, level, opts...)
}

func build(enc zapcore.Encoder, out io.Writer, level Level, opts ...Option) *Logger {
	o := &options{}
	for _, opt := range opts {
		opt.apply(o)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(out), level)
	if o.filters != "" {
		if fn, err := zapfilter.ParseRules(o.filters); err == nil {
			core = zapfilter.NewFilteringCore(core, fn)
		}
	}
	zapOpts := o.zapOpts
	if o.withCaller {
		zapOpts = append(zapOpts, zap.WithCaller(true))
	}
	if o.callerSkip != 0 {
		zapOpts = append(zapOpts, zap.AddCallerSkip(o.callerSkip))
	}
	return &Logger{l: zap.New(core, zapOpts...), level: level}
}

func (l *Logger) Named(name string) *Logger {
	return &Logger{l: l.l.Named(name), level: l.level}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Sync() error { return l.l.Sync() }

var (
	std = DevLogger(os.Stderr, InfoLevel)
	mu  sync.Mutex
)

// Default returns the process-wide logger.
func Default() *Logger { return std }

// ResetDefault replaces the process-wide logger. Call once during startup
// after the CLI flags are resolved.
func ResetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

func Debug(msg string, fields ...Field) { std.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { std.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { std.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { std.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { std.Fatal(msg, fields...) }
