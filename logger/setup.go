package logger

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger.
//
// LoggerClient implements the Logger interface.
type LoggerClient struct {
	// Zap is the underlying logger, exposed for callers that need zap-specific features.
	Zap *zap.Logger

	// tracingEnabled makes the *WithContext methods attach trace/span ids.
	tracingEnabled bool
}

// NewLoggerClient builds a JSON logger from cfg.
//
// The logger is configured with:
//   - JSON encoding with ISO8601 timestamps under the "timestamp" key
//   - Capital level names without color codes
//   - pid and service as default fields
//   - caller information, adjusted by cfg.CallerSkip
//
// Unlike a service binary, an embedded library must not exit its host, so a build
// failure (for example an unwritable output path) is returned instead.
//
// Example:
//
//	log, err := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "checkout",
//	})
//	if err != nil {
//	    return err
//	}
//	log.Info("Tracing ready", nil)
func NewLoggerClient(cfg Config) (*LoggerClient, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.FullCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": serviceName,
		},
	}

	callerSkip := cfg.CallerSkip
	if callerSkip <= 0 {
		callerSkip = 1
	}

	logger, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(callerSkip))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &LoggerClient{
		Zap:            logger,
		tracingEnabled: cfg.EnableTracing,
	}, nil
}

// NewFromZap wraps an existing zap logger, for hosts that already configured one.
func NewFromZap(z *zap.Logger, enableTracing bool) *LoggerClient {
	return &LoggerClient{Zap: z, tracingEnabled: enableTracing}
}

// NewNop returns a logger that discards everything.
func NewNop() *LoggerClient {
	return &LoggerClient{Zap: zap.NewNop()}
}

// Sync flushes buffered entries. Errors caused by syncing a terminal or pipe
// (EINVAL, ENOTTY) are ignored.
func (l *LoggerClient) Sync() error {
	err := l.Zap.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
