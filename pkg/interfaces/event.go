// Package interfaces 定义 go-evchan 公共接口
//
// 本文件定义事件分发观测接口，供指标、调试等组件接入事件通道。
package interfaces

import "time"

// DispatchObserver 定义事件分发观测接口
//
// 事件通道在分发过程中同步回调这些方法，实现必须是并发安全的，
// 且不应阻塞（它们运行在触发事件的 goroutine 上）。
type DispatchObserver interface {
	// OnRaise 一次 Raise 开始，dispatchSize 为本次分发快照中的处理器数量
	OnRaise(event string, dispatchSize int)

	// OnInvoke 一个处理器调用完成，elapsed 为回调耗时
	OnInvoke(event string, elapsed time.Duration)

	// OnSkip 快照中的处理器在轮到它之前已被注销，本次跳过
	OnSkip(event string)
}

// NopDispatchObserver 空实现
type NopDispatchObserver struct{}

// OnRaise 实现 DispatchObserver
func (NopDispatchObserver) OnRaise(string, int) {}

// OnInvoke 实现 DispatchObserver
func (NopDispatchObserver) OnInvoke(string, time.Duration) {}

// OnSkip 实现 DispatchObserver
func (NopDispatchObserver) OnSkip(string) {}

var _ DispatchObserver = NopDispatchObserver{}
