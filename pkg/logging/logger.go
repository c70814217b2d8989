package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Params configures the root logger built by New.
type Params struct {
	Debug      bool
	LogPath    string // empty disables file output
	Encoding   string // "console" or "json"; empty defaults to "console"
	Directives map[string]zapcore.Level
}

// New builds the crawler's root zap.Logger and the AtomicLevel backing
// it, so callers can adjust verbosity at runtime (e.g. on SIGUSR1 in the
// style the CLI's signal handling already uses for other settings).
func New(p Params) (*zap.Logger, *zap.AtomicLevel, error) {
	base := zapcore.InfoLevel
	if p.Debug {
		base = zapcore.DebugLevel
	}
	if l, ok := p.Directives[defaultTargetKey]; ok {
		base = l
	}
	level := zap.NewAtomicLevelAt(base)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeDuration = zapcore.StringDurationEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if term.IsTerminal(int(os.Stdout.Fd())) {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		encCfg.EncodeTime = zapcore.EpochTimeEncoder
	}

	encoding := p.Encoding
	if encoding == "" {
		encoding = "console"
	}
	var encoder zapcore.Encoder
	if encoding == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	if p.LogPath != "" {
		sink := &lumberjack.Logger{
			Filename:   p.LogPath,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(sink), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	return logger, &level, nil
}

// SubsystemLogger returns a named child logger for target, pinned to its
// own level if directives name one, otherwise inheriting root's level.
// Targets in AlwaysSilenced get a no-op logger regardless of directives
// or the --debug flag.
func SubsystemLogger(root *zap.Logger, target string, directives map[string]zapcore.Level) *zap.Logger {
	for _, silenced := range AlwaysSilenced {
		if silenced == target {
			return zap.NewNop()
		}
	}
	if l, ok := directives[target]; ok {
		core := root.Core()
		return zap.New(&levelOverrideCore{Core: core, level: l}).Named(target)
	}
	return root.Named(target)
}

// levelOverrideCore wraps a zapcore.Core, additionally filtering by a
// fixed level regardless of the wrapped core's own enabler.
type levelOverrideCore struct {
	zapcore.Core
	level zapcore.Level
}

func (c *levelOverrideCore) Enabled(l zapcore.Level) bool {
	return l >= c.level
}

func (c *levelOverrideCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}
