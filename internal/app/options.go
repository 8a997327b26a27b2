package app

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-evchan/config"
)

// BootstrapOption Bootstrap 配置选项
type BootstrapOption func(*Bootstrap)

// WithConfig 设置配置
func WithConfig(cfg *config.Config) BootstrapOption {
	return func(b *Bootstrap) {
		if cfg != nil {
			b.config = cfg
		}
	}
}

// WithClock 设置全局时钟（测试中可传入 clock.NewMock()）
func WithClock(clk clock.Clock) BootstrapOption {
	return func(b *Bootstrap) {
		b.opts.Clock = clk
	}
}

// WithFxLogging 打开 fx 依赖注入过程日志
func WithFxLogging(enabled bool) BootstrapOption {
	return func(b *Bootstrap) {
		b.opts.FxLogging = enabled
	}
}

// WithTimeouts 设置启动和停止超时
func WithTimeouts(start, stop time.Duration) BootstrapOption {
	return func(b *Bootstrap) {
		if start > 0 {
			b.opts.StartTimeout = start
		}
		if stop > 0 {
			b.opts.StopTimeout = stop
		}
	}
}

// BuildOptions 构建选项
type BuildOptions struct {
	// StartTimeout 启动超时
	StartTimeout time.Duration

	// StopTimeout 停止超时
	StopTimeout time.Duration

	// FxLogging 输出 fx 事件日志
	FxLogging bool

	// Clock 注入到各模块的时钟，nil 表示真实时钟
	Clock clock.Clock
}

// DefaultBuildOptions 默认构建选项
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		StartTimeout: defaultStartTimeout,
		StopTimeout:  defaultStopTimeout,
		FxLogging:    false,
	}
}
