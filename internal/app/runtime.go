package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-evchan/config"
	"github.com/dep2p/go-evchan/internal/core/metrics"
	"github.com/dep2p/go-evchan/internal/core/runtime"
)

// Runtime 表示一个已通过 fx 组装完成的 evchan 运行时。
type Runtime struct {
	Config      *config.Config
	Environment *runtime.Environment
	Registry    *prometheus.Registry
	Collector   *metrics.Collector // 指标关闭时为 nil

	stop func(ctx context.Context) error
}

// Stop 停止运行时（触发 fx 生命周期 OnStop）。
func (r *Runtime) Stop(ctx context.Context) error {
	if r.stop == nil {
		return nil
	}
	return r.stop(ctx)
}
