// Package logger builds the zap.SugaredLogger used throughout IgniteDB.
// Every component takes a logger at construction time rather than reaching
// for a global, so tests can inject a no-op logger and callers embedding
// IgniteDB in a larger service can route its output through their own core.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-profile *zap.SugaredLogger tagged with the given
// service name. Output is JSON-encoded and written to stderr, matching the
// default zap.NewProduction profile with the level set explicitly to Info
// (the production default) so routine engine activity (segment rotation,
// compaction runs) is visible, and with ISO8601 timestamps.
func New(service string) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	log, err := cfg.Build()
	if err != nil {
		// Building the production config only fails on a malformed encoder
		// config; fall back to a bare logger rather than leaving callers
		// with a nil logger to guard against everywhere.
		log = zap.NewNop()
	}

	return log.Named(service).Sugar()
}

// NewNop returns a logger that discards everything, for use in tests and
// other contexts where log output would only add noise.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
