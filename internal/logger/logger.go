// Package logger owns the process-wide zap sugared logger. The API
// serves a single local user, so one shared logger is enough; request
// scoping happens through the request_id field the HTTP middleware adds.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger once. "production" selects the JSON
// encoder; every other value gets the console encoder, which is the
// normal mode for an app running next to its own database file. Both
// encoders use ISO-8601 timestamps so log lines sort the same way the
// ledger dates do.
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger. When Init was never called
// (tests, one-off tooling) it falls back to a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries; main defers it around process exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
