package runtime

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/petermattis/goid"

	"github.com/dep2p/go-evchan/pkg/lib/event"
	"github.com/dep2p/go-evchan/pkg/lib/log"
)

var logger = log.Logger("core/runtime")

// ============================================================================
//                              运行时环境
// ============================================================================

// Environment 运行时环境
//
// 持有生命周期事件与帧事件，外部只能通过 *Handlers() 注册器订阅。
// 所有事件的 sender 都是 Environment 本身。
type Environment struct {
	mu        sync.Mutex
	state     State
	closing   bool
	startedAt time.Time
	stoppedAt time.Time

	// inFrame 各 goroutine 上进行中的 Step 数，frameDone 在其减少时广播
	inFrame   map[int64]int
	frameDone *sync.Cond

	name    string
	session uuid.UUID
	clock   clock.Clock
	frame   atomic.Uint64
	done    chan struct{}

	loaded       *event.Event[*Environment, event.Empty]
	started      *event.Event[*Environment, event.Empty]
	suspended    *event.Event[*Environment, event.Empty]
	resumed      *event.Event[*Environment, event.Empty]
	terminating  *event.Event[*Environment, event.Empty]
	stateChanged *event.Event[*Environment, StateChangedArgs]
	enterFrame   *event.Event[*Environment, FrameArgs]
}

// NewEnvironment 创建运行时环境
func NewEnvironment(opts ...Option) *Environment {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	eventOpts := func(name string) []event.Option {
		return []event.Option{
			event.WithName("runtime." + name),
			event.WithObserver(o.observer),
			event.WithClock(o.clock),
			event.WithSlowThreshold(o.slowThreshold),
		}
	}

	e := &Environment{
		state:   StateCreated,
		inFrame: make(map[int64]int),
		name:    o.name,
		session: uuid.New(),
		clock:   o.clock,
		done:    make(chan struct{}),

		loaded:       event.New[*Environment, event.Empty](eventOpts("loaded")...),
		started:      event.New[*Environment, event.Empty](eventOpts("started")...),
		suspended:    event.New[*Environment, event.Empty](eventOpts("suspended")...),
		resumed:      event.New[*Environment, event.Empty](eventOpts("resumed")...),
		terminating:  event.New[*Environment, event.Empty](eventOpts("terminating")...),
		stateChanged: event.New[*Environment, StateChangedArgs](eventOpts("state_changed")...),
		enterFrame:   event.New[*Environment, FrameArgs](eventOpts("enter_frame")...),
	}
	e.frameDone = sync.NewCond(&e.mu)
	return e
}

// Name 返回运行时名称
func (e *Environment) Name() string {
	return e.name
}

// SessionID 返回本次会话标识
func (e *Environment) SessionID() uuid.UUID {
	return e.session
}

// State 返回当前状态
func (e *Environment) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Frame 返回最近一次 EnterFrame 的帧号
func (e *Environment) Frame() uint64 {
	return e.frame.Load()
}

// Uptime 返回自 Start 以来的运行时长
//
// 尚未启动时返回 0；终止后停止计时。
func (e *Environment) Uptime() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.startedAt.IsZero() {
		return 0
	}
	if !e.stoppedAt.IsZero() {
		return e.stoppedAt.Sub(e.startedAt)
	}
	return e.clock.Since(e.startedAt)
}

// Done 返回在 Terminate 完成后关闭的 channel
func (e *Environment) Done() <-chan struct{} {
	return e.done
}

// ============================================================================
//                              注册器
// ============================================================================

// LoadedHandlers 返回 Loaded 事件注册器
func (e *Environment) LoadedHandlers() event.Registrar[*Environment, event.Empty] {
	return e.loaded.Handlers()
}

// StartedHandlers 返回 Started 事件注册器
func (e *Environment) StartedHandlers() event.Registrar[*Environment, event.Empty] {
	return e.started.Handlers()
}

// SuspendedHandlers 返回 Suspended 事件注册器
func (e *Environment) SuspendedHandlers() event.Registrar[*Environment, event.Empty] {
	return e.suspended.Handlers()
}

// ResumedHandlers 返回 Resumed 事件注册器
func (e *Environment) ResumedHandlers() event.Registrar[*Environment, event.Empty] {
	return e.resumed.Handlers()
}

// TerminatingHandlers 返回 Terminating 事件注册器
func (e *Environment) TerminatingHandlers() event.Registrar[*Environment, event.Empty] {
	return e.terminating.Handlers()
}

// StateChangedHandlers 返回 StateChanged 事件注册器
func (e *Environment) StateChangedHandlers() event.Registrar[*Environment, StateChangedArgs] {
	return e.stateChanged.Handlers()
}

// EnterFrameHandlers 返回 EnterFrame 事件注册器
func (e *Environment) EnterFrameHandlers() event.Registrar[*Environment, FrameArgs] {
	return e.enterFrame.Handlers()
}

// ============================================================================
//                              状态迁移
// ============================================================================

// Load 加载运行时（Created → Loaded）
func (e *Environment) Load() error {
	return e.transition(e.loaded, StateLoaded, StateCreated)
}

// Start 启动运行时（Loaded → Running）
func (e *Environment) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.transition(e.started, StateRunning, StateLoaded)
}

// Suspend 挂起运行时（Running → Suspended）
func (e *Environment) Suspend() error {
	return e.transition(e.suspended, StateSuspended, StateRunning)
}

// Resume 恢复运行时（Suspended → Running）
func (e *Environment) Resume() error {
	return e.transition(e.resumed, StateRunning, StateSuspended)
}

// Terminate 终止运行时
//
// 任意未终止状态都可以终止。先等待其他 goroutine 上进行中的帧结束，
// 再触发 Terminating，然后切换到 Terminated，最后触发 StateChanged 并关闭 Done()。
// 重复调用返回 nil。
//
// 在 EnterFrame 回调中调用 Terminate 不等待当前 goroutine 自己的帧。
// 帧回调不能阻塞等待正在执行 Terminate 的 goroutine，否则会死锁。
func (e *Environment) Terminate() error {
	self := goid.Get()

	e.mu.Lock()
	if e.state == StateTerminated || e.closing {
		e.mu.Unlock()
		return nil
	}
	e.closing = true
	for e.framesElsewhere(self) {
		e.frameDone.Wait()
	}
	e.mu.Unlock()

	e.terminating.Raise(e, event.EmptyArgs)

	e.mu.Lock()
	from := e.state
	e.state = StateTerminated
	if !e.startedAt.IsZero() {
		e.stoppedAt = e.clock.Now()
	}
	close(e.done)
	e.mu.Unlock()

	logger.Info("运行时状态变更",
		"runtime", e.name,
		"from", from.String(),
		"to", StateTerminated.String())

	e.stateChanged.Raise(e, StateChangedArgs{From: from, To: StateTerminated})
	e.clearHandlers()
	return nil
}

// Step 推进一帧
//
// 仅在 Running 状态下触发 EnterFrame 并返回 true。
// Terminate 开始后不再开始新的帧，订阅方不会在 Terminating 之后收到 EnterFrame。
func (e *Environment) Step() bool {
	id := goid.Get()

	e.mu.Lock()
	if e.state != StateRunning || e.closing {
		e.mu.Unlock()
		return false
	}
	e.inFrame[id]++
	e.mu.Unlock()
	defer e.endFrame(id)

	n := e.frame.Add(1)
	e.enterFrame.Raise(e, FrameArgs{Frame: n, Time: e.clock.Now()})
	return true
}

// endFrame 结束 goroutine id 上的一次 Step
func (e *Environment) endFrame(id int64) {
	e.mu.Lock()
	e.inFrame[id]--
	if e.inFrame[id] == 0 {
		delete(e.inFrame, id)
	}
	e.mu.Unlock()
	e.frameDone.Broadcast()
}

// framesElsewhere 是否有 self 以外的 goroutine 正在执行 Step，调用方持有 mu
func (e *Environment) framesElsewhere(self int64) bool {
	for id := range e.inFrame {
		if id != self {
			return true
		}
	}
	return false
}

// transition 执行一次状态迁移，并在锁外触发事件
func (e *Environment) transition(ev *event.Event[*Environment, event.Empty], to, from State) error {
	e.mu.Lock()
	if e.closing || e.state == StateTerminated {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrTerminated, e.name, to)
	}
	if e.state != from {
		cur := e.state
		e.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, to)
	}
	e.state = to
	if to == StateRunning && e.startedAt.IsZero() {
		e.startedAt = e.clock.Now()
	}
	e.mu.Unlock()

	logger.Info("运行时状态变更",
		"runtime", e.name,
		"from", from.String(),
		"to", to.String())

	ev.Raise(e, event.EmptyArgs)
	e.stateChanged.Raise(e, StateChangedArgs{From: from, To: to})
	return nil
}

// clearHandlers 终止后释放所有订阅
func (e *Environment) clearHandlers() {
	e.loaded.Clear()
	e.started.Clear()
	e.suspended.Clear()
	e.resumed.Clear()
	e.terminating.Clear()
	e.stateChanged.Clear()
	e.enterFrame.Clear()
}
