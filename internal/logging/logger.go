package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLevel returns the default level: warnings and errors only.
// Raise it with SetVerbose once flags are parsed.
func NewLevel() zap.AtomicLevel {
	return zap.NewAtomicLevelAt(zapcore.WarnLevel)
}

// SetVerbose switches the level between debug and warn
func SetVerbose(level zap.AtomicLevel, verbose bool) {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.WarnLevel)
}

// New builds the request logger in the development console format on stderr
func New(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Must is New that falls back to a no-op logger
func Must(level zap.AtomicLevel) *zap.Logger {
	logger, err := New(level)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
