// Package event 实现类型化的同步事件通道
//
// 事件通道（Event）由声明它的对象（owner）持有，owner 调用 Raise 以
// (sender, args) 同步通知所有已注册的处理器（Handler）。处理器的注册与注销
// 通过 Registrar 完成，Registrar 可以公开给外部代码，而 Raise 只属于 owner。
//
// # 快速开始
//
//	type Window struct {
//	    resized event.Event[*Window, ResizeArgs]
//	}
//
//	func (w *Window) ResizedHandlers() event.Registrar[*Window, ResizeArgs] {
//	    return w.resized.Handlers()
//	}
//
//	func (w *Window) setSize(width, height int) {
//	    w.resized.Raise(w, ResizeArgs{Width: width, Height: height})
//	}
//
//	// 订阅方持有 Handler，并在销毁前注销
//	h := event.NewHandler(func(w *Window, e ResizeArgs) { ... })
//	win.ResizedHandlers().Register(h)
//	defer win.ResizedHandlers().Deregister(h)
//
// 绑定方法使用 BindMethod：
//
//	h := event.BindMethod(view, (*View).onResized)
//
// # 分发语义
//
// Raise 先在集合锁下复制处理器列表（分发快照），释放集合锁后按注册顺序逐个调用。
// 每次调用前获取该处理器的调用锁并重新确认它仍然注册：
//   - 分发期间新注册的处理器不会在本次 Raise 中被调用
//   - 分发期间被注销且尚未轮到的处理器会被跳过
//   - 多个 goroutine 并发 Raise 时各自持有独立快照
//
// # 并发安全
//
//   - 集合锁只保护处理器列表，回调执行期间不持有，因此回调内可以
//     Register / Deregister / Contains / Raise 同一事件
//   - 调用锁是可重入的（internal/util/reentrant），处理器在回调中注销自己，
//     或触发嵌套 Raise 再次到达自己，都不会死锁
//   - Deregister 会等待其他 goroutine 上正在进行的该处理器调用结束；
//     返回后该处理器不会再被调用
//
// 两个 goroutine 在各自的回调中互相注销对方的处理器会死锁，调用方需要避免。
//
// # 错误处理
//
// 事件通道不定义错误：注册 nil 处理器是静默的空操作。
// 回调中的 panic 不会被捕获，会从 Raise 原样传播；处理器回调不应 panic。
package event
