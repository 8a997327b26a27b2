package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return buf
}

// TestSetOutput 测试输出重定向
func TestSetOutput(t *testing.T) {
	buf := captureOutput(t)

	log := Logger("test/output")
	log.Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "key=value")
	assert.Contains(t, output, "subsystem=test/output")
	assert.Contains(t, output, "level=info")
}

// TestSetOutput_ExistingLogger 测试已创建的 Logger 也被重定向
func TestSetOutput_ExistingLogger(t *testing.T) {
	log := Logger("test/existing")

	buf := captureOutput(t)
	log.Info("after switch")

	assert.Contains(t, buf.String(), "after switch")
}

// TestLogger_Cached 测试同一子系统返回相同实例
func TestLogger_Cached(t *testing.T) {
	assert.Same(t, Logger("test/cached"), Logger("test/cached"))
}

// TestSetLevel 测试动态调整级别
func TestSetLevel(t *testing.T) {
	buf := captureOutput(t)
	log := Logger("test/level")

	SetLevel("test/level", slog.LevelWarn)
	log.Info("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	SetLevel("test/level", slog.LevelDebug)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "level=debug")
}

// TestSetLevel_WithAttrsSharesLevel 测试派生 Logger 共享级别
func TestSetLevel_WithAttrsSharesLevel(t *testing.T) {
	buf := captureOutput(t)
	derived := Logger("test/derived").With("event", "loaded")

	SetLevel("test/derived", slog.LevelError)
	derived.Warn("hidden")
	assert.Empty(t, buf.String())

	SetLevel("test/derived", slog.LevelInfo)
	derived.Info("shown")
	assert.Contains(t, buf.String(), "event=loaded")
}

// TestParseConfig 测试解析级别配置
func TestParseConfig(t *testing.T) {
	cfg := parseConfig("lib/event=debug, core/runtime=warn,error", "json", "true")

	assert.Equal(t, slog.LevelError, cfg.DefaultLevel)
	assert.Equal(t, slog.LevelDebug, cfg.LevelForSubsystem("lib/event"))
	assert.Equal(t, slog.LevelWarn, cfg.LevelForSubsystem("core/runtime"))
	assert.Equal(t, slog.LevelError, cfg.LevelForSubsystem("other"))
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.AddSource)
}

// TestParseConfig_InvalidEntriesIgnored 测试忽略无效条目
func TestParseConfig_InvalidEntriesIgnored(t *testing.T) {
	cfg := parseConfig("lib/event=loud,,bogus", "", "")

	assert.Equal(t, slog.LevelInfo, cfg.DefaultLevel)
	assert.Empty(t, cfg.SubsystemLevels)
	assert.Equal(t, FormatText, cfg.Format)
}

// TestConfigFromEnv 测试环境变量
func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "text")
	ResetConfig()
	t.Cleanup(ResetConfig)

	cfg := ConfigFromEnv()
	require.NotNil(t, cfg)
	assert.Equal(t, slog.LevelWarn, cfg.DefaultLevel)
	assert.Same(t, cfg, ConfigFromEnv())
}

// TestConfigure 测试显式配置更新已创建 Logger 的级别
func TestConfigure(t *testing.T) {
	buf := captureOutput(t)
	log := Logger("test/configure")
	t.Cleanup(ResetConfig)

	Configure("test/configure=error,info", "text")
	log.Warn("hidden")
	assert.Empty(t, buf.String())

	Configure("debug", "text")
	log.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

// TestDiscard 测试丢弃 Logger
func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
	log.Error("nothing")
}
