package event

// Registrar 事件注册器
//
// Registrar 是事件对外公开的一面：可以注册、注销、查询处理器，但不能触发事件。
// 它只是对 Event 的轻量引用，可以按值传递。
type Registrar[S, A any] struct {
	event *Event[S, A]
}

// Register 注册处理器
//
// h 为 nil、回调为 nil 或已注册时静默忽略。
func (r Registrar[S, A]) Register(h *Handler[S, A]) {
	if r.event == nil {
		return
	}
	r.event.register(h)
}

// Deregister 注销处理器，返回是否找到并移除
//
// 若其他 goroutine 正在调用 h，Deregister 会阻塞到该调用结束。
// 在 h 自己的回调中注销 h 不会阻塞。返回后 h 不会再被该事件调用。
func (r Registrar[S, A]) Deregister(h *Handler[S, A]) bool {
	if r.event == nil {
		return false
	}
	return r.event.deregister(h)
}

// Contains 返回 h 是否已注册
func (r Registrar[S, A]) Contains(h *Handler[S, A]) bool {
	if r.event == nil {
		return false
	}
	return r.event.contains(h)
}

// Count 返回已注册的处理器数量
func (r Registrar[S, A]) Count() int {
	if r.event == nil {
		return 0
	}
	return r.event.Count()
}
