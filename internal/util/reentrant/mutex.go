// Package reentrant 提供可重入互斥锁
//
// Go 标准库的 sync.Mutex 不可重入：同一个 goroutine 第二次 Lock 会死锁。
// 事件分发时，处理器可能在持有自身调用锁的情况下再次触发同一事件，
// 或在回调中注销自己，因此调用锁必须允许同一 goroutine 重复加锁。
//
// 持有者通过 goroutine ID 识别（github.com/petermattis/goid）。
package reentrant

import (
	"sync"

	"github.com/petermattis/goid"
)

// Mutex 可重入互斥锁
//
// 零值可用。同一 goroutine 可多次 Lock，必须调用相同次数的 Unlock 才会释放。
// 不能被复制。
type Mutex struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner int64 // 0 表示无持有者
	depth int
}

// Lock 加锁
//
// 若当前 goroutine 已持有锁，仅增加重入深度；否则阻塞直到锁被释放。
func (m *Mutex) Lock() {
	id := goid.Get()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner == id {
		m.depth++
		return
	}

	if m.cond == nil {
		m.cond = sync.NewCond(&m.mu)
	}
	for m.owner != 0 {
		m.cond.Wait()
	}

	m.owner = id
	m.depth = 1
}

// TryLock 尝试加锁，不阻塞
func (m *Mutex) TryLock() bool {
	id := goid.Get()

	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.owner {
	case id:
		m.depth++
		return true
	case 0:
		m.owner = id
		m.depth = 1
		return true
	default:
		return false
	}
}

// Unlock 解锁
//
// 由非持有者调用会 panic，行为与 sync.Mutex 对未加锁互斥量解锁一致。
func (m *Mutex) Unlock() {
	id := goid.Get()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.owner != id {
		panic("reentrant: unlock of mutex not held by current goroutine")
	}

	m.depth--
	if m.depth > 0 {
		return
	}

	m.owner = 0
	if m.cond != nil {
		m.cond.Signal()
	}
}

// HeldByCurrent 返回当前 goroutine 是否持有该锁
func (m *Mutex) HeldByCurrent() bool {
	id := goid.Get()

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.owner == id
}

// 确保实现 sync.Locker
var _ sync.Locker = (*Mutex)(nil)
