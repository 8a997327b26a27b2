// Package metrics 提供事件分发指标收集
//
// Collector 实现 interfaces.DispatchObserver，挂到事件通道上后记录：
//   - Raise 次数、处理器调用次数、跳过次数（Prometheus Counter）
//   - 处理器调用耗时（Prometheus Histogram）
//   - 最近一次分发快照大小（Prometheus Gauge）
//   - 进程内统计快照与最近 60 秒的 Raise 速率（Stats）
//
// # 快速开始
//
//	reg := prometheus.NewRegistry()
//	c, err := metrics.NewCollector(metrics.DefaultConfig(), reg, nil)
//
//	e := event.New[*Window, ResizeArgs](
//	    event.WithName("window.resized"),
//	    event.WithObserver(c),
//	)
//
//	stats, ok := c.Snapshot("window.resized")
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module,
//	    fx.Invoke(func(obs interfaces.DispatchObserver) { ... }),
//	)
//
// 指标关闭时 Module 提供 NopDispatchObserver。
//
// 跟踪的事件名称数受 Config.MaxEvents 限制（LRU 淘汰），被淘汰事件的标签同时删除。
package metrics
