package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseDirectivesBareLevel(t *testing.T) {
	d := ParseDirectives("debug")
	require.Equal(t, zapcore.DebugLevel, d[defaultTargetKey])
}

func TestParseDirectivesPerTarget(t *testing.T) {
	d := ParseDirectives("info,crawler.proto=debug,crawler.rpc=warn")
	require.Equal(t, zapcore.InfoLevel, d[defaultTargetKey])
	require.Equal(t, zapcore.DebugLevel, d["crawler.proto"])
	require.Equal(t, zapcore.WarnLevel, d["crawler.rpc"])
}

func TestParseDirectivesEmpty(t *testing.T) {
	require.Empty(t, ParseDirectives(""))
}

func TestLevelForFallsBackToDefaultThenFallback(t *testing.T) {
	d := ParseDirectives("warn")
	require.Equal(t, zapcore.WarnLevel, LevelFor(d, "crawler.proto", zapcore.InfoLevel))
	require.Equal(t, zapcore.InfoLevel, LevelFor(nil, "crawler.proto", zapcore.InfoLevel))
}
