// Package evchan 提供线程安全的类型化事件通道
//
// evchan 是平台层的观察者原语：owner 持有事件通道并触发事件，
// 订阅者通过注册器登记处理器。分发期间注册和注销都是安全的。
//
// # 核心概念
//
//   - Event: 事件通道，owner 独占，提供 Raise
//   - Handler: 处理器，由订阅者创建和持有，指针即身份
//   - Registrar: 注册器，对外公开 Register / Deregister / Contains
//
// # 快速开始
//
//	import "github.com/dep2p/go-evchan/pkg/lib/event"
//
//	type Window struct {
//	    resized event.Event[*Window, Size]
//	}
//
//	func (w *Window) ResizedHandlers() event.Registrar[*Window, Size] {
//	    return w.resized.Handlers()
//	}
//
//	h := event.NewHandler(func(w *Window, s Size) { relayout(s) })
//	win.ResizedHandlers().Register(h)
//	defer win.ResizedHandlers().Deregister(h)
//
// # 包结构
//
//   - pkg/lib/event: 事件通道原语
//   - pkg/interfaces: DispatchObserver 观测接口
//   - internal/core/metrics: Prometheus 分发指标
//   - internal/core/runtime: 运行时环境（生命周期事件 owner）
//   - internal/app: fx 应用组装
//   - cmd/evchan: 演示命令行
package evchan
