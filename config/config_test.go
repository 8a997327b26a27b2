package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 16*time.Millisecond, cfg.Dispatch.EffectiveThreshold())
	assert.Equal(t, "evchan", cfg.Metrics.Namespace)
	assert.Equal(t, "main", cfg.Runtime.Name)
}

// TestConfig_ValidateNil 测试空配置
func TestConfig_ValidateNil(t *testing.T) {
	var cfg *Config
	assert.ErrorIs(t, cfg.Validate(), ErrNilConfig)
}

// TestConfig_ValidateCombinesErrors 测试返回全部错误
func TestConfig_ValidateCombinesErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Dispatch.SlowHandlerThreshold = Duration(-time.Second)
	cfg.Metrics.Namespace = "bad-namespace"
	cfg.Log.Format = "xml"
	cfg.Runtime.Name = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

// TestDispatchConfig 测试分发配置
func TestDispatchConfig(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		cfg := DefaultDispatchConfig()
		cfg.WarnOnSlowHandler = false
		assert.Zero(t, cfg.EffectiveThreshold())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("WarnWithoutThreshold", func(t *testing.T) {
		cfg := DefaultDispatchConfig()
		cfg.SlowHandlerThreshold = 0
		assert.Error(t, cfg.Validate())
	})
}

// TestMetricsConfig 测试指标配置
func TestMetricsConfig(t *testing.T) {
	t.Run("DisabledSkipsChecks", func(t *testing.T) {
		cfg := MetricsConfig{Enabled: false, Namespace: "!!"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("BadPath", func(t *testing.T) {
		cfg := DefaultMetricsConfig()
		cfg.ListenAddr = ":9100"
		cfg.Path = "metrics"
		assert.Error(t, cfg.Validate())
	})

	t.Run("DefaultMaxEvents", func(t *testing.T) {
		assert.Equal(t, DefaultMaxEvents, DefaultMetricsConfig().MaxEvents)
		assert.Equal(t, DefaultMaxEvents, NewConfig().Metrics.MaxEvents)
	})

	t.Run("NegativeMaxEvents", func(t *testing.T) {
		cfg := DefaultMetricsConfig()
		cfg.MaxEvents = -1
		assert.Error(t, cfg.Validate())
	})
}

// TestLogConfig 测试日志配置
func TestLogConfig(t *testing.T) {
	cfg := DefaultLogConfig()
	cfg.Level = "lib/event=debug,core/runtime=warn,info"
	assert.NoError(t, cfg.Validate())

	cfg.Level = "lib/event=loud"
	assert.Error(t, cfg.Validate())
}

// TestFromJSON 测试从 JSON 加载
func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"dispatch": {"slow_handler_threshold": "50ms"},
		"metrics": {"enabled": false},
		"runtime": {"name": "sim", "frame_interval": 33000000}
	}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Dispatch.SlowHandlerThreshold.Duration())
	assert.True(t, cfg.Dispatch.WarnOnSlowHandler, "未出现的字段保持默认值")
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "sim", cfg.Runtime.Name)
	assert.Equal(t, 33*time.Millisecond, cfg.Runtime.FrameInterval.Duration())
}

// TestFromJSON_Invalid 测试无效 JSON
func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte(`{"dispatch": {"slow_handler_threshold": "soon"}}`))
	assert.Error(t, err)

	_, err = FromJSON([]byte(`{`))
	assert.Error(t, err)
}

// TestSaveAndLoad 测试保存与加载
func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evchan.json")

	cfg := NewConfig()
	cfg.Runtime.Name = "roundtrip"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// TestLoadFromFile_Missing 测试文件不存在
func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// TestApplyEnv 测试环境变量覆盖
func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSlowHandlerThreshold, "5ms")
	t.Setenv(EnvMetricsEnabled, "false")
	t.Setenv(EnvMetricsAddr, ":9200")
	t.Setenv(EnvRuntimeName, "env")
	t.Setenv(EnvLogLevel, "lib/event=debug,warn")
	t.Setenv(EnvLogFormat, "json")

	cfg := NewConfig()
	require.NoError(t, ApplyEnv(cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 5*time.Millisecond, cfg.Dispatch.EffectiveThreshold())
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9200", cfg.Metrics.ListenAddr)
	assert.Equal(t, "env", cfg.Runtime.Name)
	assert.Equal(t, "lib/event=debug,warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

// TestApplyEnv_Invalid 测试无效环境变量
func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv(EnvSlowHandlerThreshold, "later")
	t.Setenv(EnvMetricsEnabled, "maybe")

	err := ApplyEnv(NewConfig())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}
