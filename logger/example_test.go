package logger_test

import (
	"context"
	"errors"

	"github.com/aalemi-dev/longtrace/logger"
)

func ExampleNewLoggerClient() {
	log, err := logger.NewLoggerClient(logger.Config{
		Level:       logger.Info,
		ServiceName: "checkout",
	})
	if err != nil {
		panic(err)
	}

	log.Info("Tracer initialized", nil, map[string]interface{}{
		"database":   "20260309",
		"batch_size": 10,
	})
}

func ExampleLoggerClient_ErrorWithContext() {
	log, err := logger.NewLoggerClient(logger.Config{
		Level:         logger.Info,
		ServiceName:   "checkout",
		EnableTracing: true,
	})
	if err != nil {
		panic(err)
	}

	log.ErrorWithContext(context.Background(), "Dropped trace records after failed flush", errors.New("connection error"), map[string]interface{}{
		"dropped": 10,
	})
}

func ExampleNewNop() {
	log := logger.NewNop()
	log.Warn("never written", nil)
}
