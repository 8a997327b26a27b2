package mocks

import (
	"sync"
	"time"

	"github.com/dep2p/go-evchan/pkg/interfaces"
)

// MockDispatchObserver 模拟 DispatchObserver 接口实现
//
// 记录所有回调，用于断言事件分发过程。
type MockDispatchObserver struct {
	mu sync.Mutex

	// 可覆盖的方法
	OnRaiseFunc  func(event string, dispatchSize int)
	OnInvokeFunc func(event string, elapsed time.Duration)
	OnSkipFunc   func(event string)

	// 调用记录
	RaiseCalls  []RaiseCall
	InvokeCalls []InvokeCall
	SkipCalls   []string
}

// RaiseCall 一次 OnRaise 调用记录
type RaiseCall struct {
	Event        string
	DispatchSize int
}

// InvokeCall 一次 OnInvoke 调用记录
type InvokeCall struct {
	Event   string
	Elapsed time.Duration
}

// NewMockDispatchObserver 创建 MockDispatchObserver
func NewMockDispatchObserver() *MockDispatchObserver {
	return &MockDispatchObserver{}
}

// OnRaise 实现 DispatchObserver
func (m *MockDispatchObserver) OnRaise(event string, dispatchSize int) {
	m.mu.Lock()
	m.RaiseCalls = append(m.RaiseCalls, RaiseCall{Event: event, DispatchSize: dispatchSize})
	fn := m.OnRaiseFunc
	m.mu.Unlock()

	if fn != nil {
		fn(event, dispatchSize)
	}
}

// OnInvoke 实现 DispatchObserver
func (m *MockDispatchObserver) OnInvoke(event string, elapsed time.Duration) {
	m.mu.Lock()
	m.InvokeCalls = append(m.InvokeCalls, InvokeCall{Event: event, Elapsed: elapsed})
	fn := m.OnInvokeFunc
	m.mu.Unlock()

	if fn != nil {
		fn(event, elapsed)
	}
}

// OnSkip 实现 DispatchObserver
func (m *MockDispatchObserver) OnSkip(event string) {
	m.mu.Lock()
	m.SkipCalls = append(m.SkipCalls, event)
	fn := m.OnSkipFunc
	m.mu.Unlock()

	if fn != nil {
		fn(event)
	}
}

// Counts 返回 raise / invoke / skip 的调用次数
func (m *MockDispatchObserver) Counts() (raises, invokes, skips int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RaiseCalls), len(m.InvokeCalls), len(m.SkipCalls)
}

// Reset 清空调用记录
func (m *MockDispatchObserver) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RaiseCalls = nil
	m.InvokeCalls = nil
	m.SkipCalls = nil
}

var _ interfaces.DispatchObserver = (*MockDispatchObserver)(nil)
