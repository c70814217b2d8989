// Package logging wires up the crawler's structured logging: per-subsystem
// zap loggers, an env-var directive syntax modeled on tracing_subscriber's
// EnvFilter for setting their levels, and the console/file sink setup the
// CLI's --debug/--log-path/--log-encoding flags control.
package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// ParseDirectives parses a comma-separated RUST_LOG-style directive
// string into a set of per-target levels. Each directive is either a
// bare level (the default for any target without its own entry) or a
// "target=level" pair. Unrecognized levels are skipped rather than
// treated as fatal, since this only ever narrows or widens logging
// verbosity.
//
// Example: "info,crawler.proto=debug,crawler.rpc=warn"
func ParseDirectives(env string) map[string]zapcore.Level {
	out := make(map[string]zapcore.Level)
	if strings.TrimSpace(env) == "" {
		return out
	}

	for _, part := range strings.Split(env, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		target := defaultTargetKey
		levelStr := part
		if eq := strings.IndexByte(part, '='); eq >= 0 {
			target = strings.TrimSpace(part[:eq])
			levelStr = strings.TrimSpace(part[eq+1:])
		}

		level, ok := parseLevel(levelStr)
		if !ok {
			continue
		}
		out[target] = level
	}
	return out
}

// defaultTargetKey holds the directive that applies to any subsystem not
// named explicitly.
const defaultTargetKey = ""

func parseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(s) {
	case "trace", "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "off", "none":
		// There is no true "off" zapcore.Level; the level above Error
		// drops everything up to and including Error entries.
		return zapcore.ErrorLevel + 1, true
	default:
		return 0, false
	}
}

// LevelFor returns the level directives assign to target, falling back
// to the bare default directive, and finally to fallback if neither is
// present.
func LevelFor(directives map[string]zapcore.Level, target string, fallback zapcore.Level) zapcore.Level {
	if l, ok := directives[target]; ok {
		return l
	}
	if l, ok := directives[defaultTargetKey]; ok {
		return l
	}
	return fallback
}

// AlwaysSilenced lists the targets for which SubsystemLogger returns a
// no-op logger regardless of the environment, mirroring the original's
// hardcoded tokio_util=off/mio=off directives: the wire codec and the
// scheduler's per-dial logging. No component in this repository creates
// a logger under either name.
var AlwaysSilenced = []string{"crawler.zwire", "crawler.scheduler.dial"}
