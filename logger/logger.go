// Package logger provides the structured logger of the fin tool, built on zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init initializes the global logger for the given environment.
//
// "production" logs JSON at info level. Any other environment logs
// human-readable lines, and "quiet" discards everything.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error
		switch env {
		case "production":
			base, err = zap.NewProduction()
		case "quiet":
			base = zap.NewNop()
		default:
			base, err = zap.NewDevelopment()
		}
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// Get returns the global logger, initialized for development if Init was not called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries. Call it before exiting.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
