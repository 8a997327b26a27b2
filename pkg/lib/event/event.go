package event

import (
	"slices"
	"sync"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-evchan/pkg/interfaces"
	"github.com/dep2p/go-evchan/pkg/lib/log"
)

var logger = log.Logger("lib/event")

// ============================================================================
// Event 实现
// ============================================================================

// Event 事件通道
//
// 零值可用。Event 由 owner 独占持有，owner 通过 Handlers() 对外公开注册器，
// 自己调用 Raise 触发事件。Event 不能被复制。
type Event[S, A any] struct {
	mu       sync.Mutex
	handlers []*Handler[S, A] // 按注册顺序，无重复

	settings settings
}

// New 创建事件通道
func New[S, A any](opts ...Option) *Event[S, A] {
	e := &Event[S, A]{}
	for _, opt := range opts {
		opt(&e.settings)
	}
	return e
}

// Name 返回事件名称
func (e *Event[S, A]) Name() string {
	return e.settings.name
}

// Handlers 返回事件的注册器
//
// 注册器可以公开给外部代码，它不提供 Raise。
func (e *Event[S, A]) Handlers() Registrar[S, A] {
	return Registrar[S, A]{event: e}
}

// Count 返回当前已注册的处理器数量
func (e *Event[S, A]) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// Raise 同步触发事件
//
// 在调用方 goroutine 上按注册顺序调用分发快照中仍然注册的处理器。
// 回调中的 panic 不会被捕获；处理器回调不应 panic。
func (e *Event[S, A]) Raise(sender S, args A) {
	// 1. 集合锁下复制分发快照
	e.mu.Lock()
	dispatch := slices.Clone(e.handlers)
	e.mu.Unlock()

	observer := e.observer()
	observer.OnRaise(e.settings.name, len(dispatch))

	// 2. 逐个调用，每次调用前重新确认仍然注册
	for _, h := range dispatch {
		e.invoke(h, observer, sender, args)
	}
}

// Clear 注销所有处理器
//
// 每个处理器的注销都会等待它进行中的调用结束。用于 owner 销毁前的清理。
func (e *Event[S, A]) Clear() {
	e.mu.Lock()
	current := slices.Clone(e.handlers)
	e.mu.Unlock()

	for _, h := range current {
		e.deregister(h)
	}
}

// ============================================================================
// 内部方法
// ============================================================================

// invoke 在调用锁保护下调用单个处理器
func (e *Event[S, A]) invoke(h *Handler[S, A], observer pkgif.DispatchObserver, sender S, args A) {
	h.guard.Lock()
	defer h.guard.Unlock()

	if !e.contains(h) {
		observer.OnSkip(e.settings.name)
		return
	}

	clk := e.clock()
	start := clk.Now()
	h.fn(sender, args)
	elapsed := clk.Since(start)

	observer.OnInvoke(e.settings.name, elapsed)

	if threshold := e.settings.slowThreshold; threshold > 0 && elapsed >= threshold {
		logger.Warn("慢处理器检测",
			"event", e.settings.name,
			"elapsed", elapsed,
			"threshold", threshold)
	}
}

// register 追加处理器，nil 或重复时忽略
func (e *Event[S, A]) register(h *Handler[S, A]) {
	if !h.valid() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if slices.Contains(e.handlers, h) {
		return
	}
	e.handlers = append(e.handlers, h)
}

// deregister 等待进行中的调用结束后移除处理器
//
// 加锁顺序固定为 调用锁 → 集合锁，与 invoke 一致。
func (e *Event[S, A]) deregister(h *Handler[S, A]) bool {
	if h == nil {
		return false
	}

	switch {
	case h.guard.HeldByCurrent():
		// 在 h 自己的回调中注销，调用锁已由当前 goroutine 持有
	case h.guard.TryLock():
		defer h.guard.Unlock()
	default:
		logger.Debug("注销等待进行中的调用", "event", e.settings.name)
		h.guard.Lock()
		defer h.guard.Unlock()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := slices.Index(e.handlers, h)
	if idx < 0 {
		return false
	}

	e.handlers = slices.Delete(e.handlers, idx, idx+1)
	return true
}

// contains 是否已注册
func (e *Event[S, A]) contains(h *Handler[S, A]) bool {
	if h == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Contains(e.handlers, h)
}

func (e *Event[S, A]) observer() pkgif.DispatchObserver {
	if e.settings.observer == nil {
		return pkgif.NopDispatchObserver{}
	}
	return e.settings.observer
}

func (e *Event[S, A]) clock() clock.Clock {
	if e.settings.clock == nil {
		return defaultClock
	}
	return e.settings.clock
}

