// Package logger provides a global, Sugared Zap logger with context-derived
// fields. It emits JSON logs to stdout and, when the context carries an
// OpenTelemetry span, annotates every entry with its trace and span IDs. When an
// OpenTelemetry LoggerProvider is available, entries are also forwarded to it
// through an OTEL bridge core.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/gabapcia/transferwatch/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bridgeName is the instrumentation scope of records sent through the OTEL bridge.
const bridgeName = "github.com/gabapcia/transferwatch"

// ctxKeyType is the private type of the context key holding a derived logger.
type ctxKeyType struct{}

var (
	// baseLogger is the global SugaredLogger instance. It is initialized once by Init.
	baseLogger *zap.SugaredLogger

	// initBaseLoggerOnce ensures the logger is only configured a single time.
	initBaseLoggerOnce sync.Once

	// ctxKey is the context key under which Derive stores a logger.
	ctxKey = ctxKeyType{}

	// nopLogger is used when logging happens before Init.
	nopLogger = zap.NewNop().Sugar()
)

// config holds configuration options for the logger.
type config struct {
	provider otellog.LoggerProvider // OTEL bridge target; nil disables the bridge
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLoggerProvider forwards every entry to lp in addition to stdout. It
// overrides the provider registered by telemetry.Init.
func WithLoggerProvider(lp otellog.LoggerProvider) Option {
	return func(c *config) {
		c.provider = lp
	}
}

// Init configures the global logger at the given minimum level ("debug", "info",
// "warn", "error", "panic", "fatal"). Logs are written as JSON to stdout. If an
// OpenTelemetry LoggerProvider is registered via telemetry.LoggerProvider() (or
// given with WithLoggerProvider), an OTEL bridge core is added so entries also
// reach the telemetry backend. Calling Init multiple times has no effect after
// the first successful call.
//
// Returns an error if parsing the log level fails.
func Init(level string, opts ...Option) error {
	var cfg config
	if lp := telemetry.LoggerProvider(); lp != nil {
		cfg.provider = lp
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	initBaseLoggerOnce.Do(func() {
		cores := []zapcore.Core{
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				lvl,
			),
		}

		if cfg.provider != nil {
			cores = append(cores, otelzap.NewCore(bridgeName, otelzap.WithLoggerProvider(cfg.provider)))
		}

		baseLogger = zap.New(zapcore.NewTee(cores...)).Sugar()
	})

	return nil
}

// fromCtx returns the logger stored in ctx by Derive, or the base logger.
func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey).(*zap.SugaredLogger); ok {
		return l
	}

	if baseLogger == nil {
		return nopLogger
	}

	return baseLogger
}

// deriveFromCtx returns the context logger enriched with the active span's
// identifiers (if any) and the given key/value pairs.
func deriveFromCtx(ctx context.Context, keysAndValues ...any) *zap.SugaredLogger {
	l := fromCtx(ctx)

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With(
			"trace_id", sc.TraceID().String(),
			"span_id", sc.SpanID().String(),
		)
	}

	if len(keysAndValues) > 0 {
		l = l.With(keysAndValues...)
	}

	return l
}

// Derive returns a copy of ctx carrying a logger that always includes the given
// key/value pairs. Use it to attach fields such as a block height to every log
// entry emitted further down the call chain.
func Derive(ctx context.Context, keysAndValues ...any) context.Context {
	return context.WithValue(ctx, ctxKey, fromCtx(ctx).With(keysAndValues...))
}

// Sync flushes any buffered log entries. It should be called on application
// shutdown to ensure all logs are written out.
func Sync() error {
	if baseLogger == nil {
		return nil
	}

	return baseLogger.Sync()
}

// log writes msg at level through the context-derived logger.
func log(ctx context.Context, level zapcore.Level, msg string, keysAndValues ...any) {
	deriveFromCtx(ctx).Logw(level, msg, keysAndValues...)
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.DebugLevel, msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.InfoLevel, msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.WarnLevel, msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.ErrorLevel, msg, keysAndValues...)
}

// Panic logs a panic-level message (and then panics) with optional key/value context.
func Panic(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.PanicLevel, msg, keysAndValues...)
}

// Fatal logs a fatal-level message (and then exits) with optional key/value context.
func Fatal(ctx context.Context, msg string, keysAndValues ...any) {
	log(ctx, zapcore.FatalLevel, msg, keysAndValues...)
}
