package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-evchan/config"
	"github.com/dep2p/go-evchan/internal/app"
	"github.com/dep2p/go-evchan/internal/core/runtime"
)

// TestBuildConfig_Defaults 测试默认配置
func TestBuildConfig_Defaults(t *testing.T) {
	cfg, err := buildConfig("", overrides{})
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)
}

// TestBuildConfig_Priority 测试 文件 < 环境变量 < 命令行 的优先级
func TestBuildConfig_Priority(t *testing.T) {
	fileCfg := config.NewConfig()
	fileCfg.Runtime.Name = "from-file"
	fileCfg.Log.Level = "warn"
	fileCfg.Metrics.ListenAddr = ":1111"

	path := filepath.Join(t.TempDir(), "evchan.json")
	require.NoError(t, fileCfg.SaveToFile(path))

	t.Setenv(config.EnvMetricsAddr, ":2222")

	addr := ":3333"
	level := "debug"
	interval := 5 * time.Millisecond

	cfg, err := buildConfig(path, overrides{
		metricsAddr: &addr,
		logLevel:    &level,
		interval:    &interval,
	})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Runtime.Name)
	assert.Equal(t, ":3333", cfg.Metrics.ListenAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, interval, cfg.Runtime.FrameInterval.Duration())

	cfg, err = buildConfig(path, overrides{})
	require.NoError(t, err)
	assert.Equal(t, ":2222", cfg.Metrics.ListenAddr, "环境变量覆盖配置文件")
	assert.Equal(t, "warn", cfg.Log.Level)
}

// TestBuildConfig_Invalid 测试非法参数
func TestBuildConfig_Invalid(t *testing.T) {
	level := "loud"
	_, err := buildConfig("", overrides{logLevel: &level})
	assert.Error(t, err)

	_, err = buildConfig(filepath.Join(t.TempDir(), "missing.json"), overrides{})
	assert.Error(t, err)
}

// TestConsole 测试控制台订阅者
func TestConsole(t *testing.T) {
	env := runtime.NewEnvironment(runtime.WithName("demo"))
	var buf bytes.Buffer

	c := newConsole(&buf)
	c.subscribe(env)

	require.NoError(t, env.Load())
	require.NoError(t, env.Start(context.Background()))
	for i := 0; i < 100; i++ {
		env.Step()
	}
	require.NoError(t, env.Terminate())

	out := buf.String()
	assert.Contains(t, out, "[demo] created -> loaded")
	assert.Contains(t, out, "[demo] loaded -> running")
	assert.Contains(t, out, "[demo] frame=100")
	assert.Contains(t, out, "[demo] terminating after 100 frames")
	assert.Contains(t, out, "[demo] running -> terminated")

	// 终止时已清空订阅
	c.unsubscribe(env)
	assert.Zero(t, env.StateChangedHandlers().Count())
}

// TestServe 测试帧推进与指标服务
func TestServe(t *testing.T) {
	rt, err := app.NewBootstrap(nil).Build(context.Background())
	require.NoError(t, err)
	defer rt.Stop(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, rt, time.Millisecond, 4) }()

	require.Eventually(t, func() bool {
		return rt.Environment.Frame() >= 20
	}, 5*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve 应在 context 取消后返回")
	}
}

// TestMetricsServer 测试指标 HTTP 处理器
func TestMetricsServer(t *testing.T) {
	rt, err := app.NewBootstrap(nil).Build(context.Background())
	require.NoError(t, err)
	defer rt.Stop(context.Background())

	require.True(t, rt.Environment.Step())

	srv := newMetricsServer(rt, "127.0.0.1:0")
	assert.Equal(t, "127.0.0.1:0", srv.Addr)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, rt.Config.Metrics.Path, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `evchan_event_raises_total{event="runtime.enter_frame"} 1`)
}

// TestServe_EnvironmentTerminated 测试运行时终止后 serve 返回
func TestServe_EnvironmentTerminated(t *testing.T) {
	rt, err := app.NewBootstrap(nil).Build(context.Background())
	require.NoError(t, err)
	defer rt.Stop(context.Background())

	done := make(chan error, 1)
	go func() { done <- serve(context.Background(), rt, time.Millisecond, 2) }()

	require.NoError(t, rt.Environment.Terminate())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve 应在运行时终止后返回")
	}
}
