package event

import "github.com/dep2p/go-evchan/internal/util/reentrant"

// Func 事件回调函数
type Func[S, A any] func(sender S, args A)

// Handler 一个事件处理器（订阅）
//
// Handler 由订阅方创建并持有，事件通道只保存它的指针，以指针作为唯一标识。
// 同一个 Handler 可以注册到多个事件通道上。
//
// 订阅方必须在回调所依赖的状态被释放之前调用 Deregister。
type Handler[S, A any] struct {
	fn Func[S, A]

	// guard 调用锁，调用期间持有，Deregister 借此等待进行中的调用结束
	guard reentrant.Mutex
}

// NewHandler 创建绑定普通函数的处理器
//
// fn 为 nil 时返回的处理器无法注册（Register 静默忽略）。
func NewHandler[S, A any](fn func(sender S, args A)) *Handler[S, A] {
	return &Handler[S, A]{fn: fn}
}

// BindMethod 创建绑定对象方法的处理器
//
// method 通常是方法表达式，例如 (*View).onResized。
// obj 或 method 为 nil 时返回的处理器无法注册。
//
// 处理器持有 obj 的引用；订阅方仍需在 obj 不再使用前显式注销。
func BindMethod[T, S, A any](obj *T, method func(obj *T, sender S, args A)) *Handler[S, A] {
	if obj == nil || method == nil {
		return &Handler[S, A]{}
	}
	return &Handler[S, A]{
		fn: func(sender S, args A) {
			method(obj, sender, args)
		},
	}
}

// valid 是否可以注册
func (h *Handler[S, A]) valid() bool {
	return h != nil && h.fn != nil
}
