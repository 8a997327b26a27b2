package metrics

import (
	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/dep2p/go-evchan/config"
	pkgif "github.com/dep2p/go-evchan/pkg/interfaces"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace Prometheus 命名空间
	Namespace string

	// MaxEvents 最多跟踪的事件名称数，0 表示使用 DefaultMaxEvents
	MaxEvents int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Namespace: "evchan",
		MaxEvents: DefaultMaxEvents,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
		MaxEvents: cfg.Metrics.MaxEvents,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Result Metrics 模块输出
type Result struct {
	fx.Out

	Registry  *prometheus.Registry
	Collector *Collector // 指标关闭时为 nil
	Observer  pkgif.DispatchObserver
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewFromParams),
)

// NewFromParams 从参数创建 Registry 和 Collector
//
// Registry 总是提供（包含 Go 运行时与进程指标）；指标关闭时 Observer 为空实现。
func NewFromParams(p Params) (Result, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		logger.Info("分发指标已关闭")
		return Result{Registry: reg, Observer: pkgif.NopDispatchObserver{}}, nil
	}

	c, err := NewCollector(cfg, reg, p.Clock)
	if err != nil {
		return Result{}, err
	}

	return Result{Registry: reg, Collector: c, Observer: c}, nil
}
