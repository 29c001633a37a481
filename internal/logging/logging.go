package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the sugared zap logger shared by the CLI and the engine.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger builds a console logger. verbose switches to debug level with
// caller info.
func NewLogger(verbose bool) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	return newLogger(level, verbose)
}

// NewLoggerWithLevel builds a console logger from a level name such as
// "debug" or "warn". Unknown names fall back to info.
func NewLoggerWithLevel(name string, verbose bool) *Logger {
	if verbose {
		return NewLogger(true)
	}
	level, err := zap.ParseAtomicLevel(name)
	if err != nil {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return newLogger(level, false)
}

func newLogger(level zap.AtomicLevel, development bool) *Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !development {
		encoderCfg.TimeKey = ""
		encoderCfg.CallerKey = ""
	}

	cfg := zap.Config{
		Level:             level,
		Development:       development,
		DisableStacktrace: !development,
		Encoding:          "console",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	return &Logger{SugaredLogger: base.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Named returns a child logger scoped to a component.
func (l *Logger) Named(name string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.Named(name)}
}
