package reentrant

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMutex_Reentrant 测试同一 goroutine 重复加锁
func TestMutex_Reentrant(t *testing.T) {
	var m Mutex

	m.Lock()
	m.Lock()
	m.Lock()
	assert.True(t, m.HeldByCurrent())

	m.Unlock()
	m.Unlock()
	assert.True(t, m.HeldByCurrent(), "还剩一层重入，应仍持有")

	m.Unlock()
	assert.False(t, m.HeldByCurrent())
}

// TestMutex_BlocksOtherGoroutine 测试其他 goroutine 在锁释放前被阻塞
func TestMutex_BlocksOtherGoroutine(t *testing.T) {
	var m Mutex
	var acquired atomic.Bool

	m.Lock()
	m.Lock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Lock()
		acquired.Store(true)
		m.Unlock()
	}()

	time.Sleep(20 * time.Millisecond)
	assert.False(t, acquired.Load(), "持有期间其他 goroutine 不应获得锁")

	m.Unlock()
	time.Sleep(20 * time.Millisecond)
	assert.False(t, acquired.Load(), "仍有一层重入未释放")

	m.Unlock()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("释放后其他 goroutine 未获得锁")
	}
	assert.True(t, acquired.Load())
}

// TestMutex_TryLock 测试非阻塞加锁
func TestMutex_TryLock(t *testing.T) {
	var m Mutex

	require.True(t, m.TryLock())
	require.True(t, m.TryLock(), "同一 goroutine 可重入")

	result := make(chan bool)
	go func() {
		result <- m.TryLock()
	}()
	assert.False(t, <-result)

	m.Unlock()
	m.Unlock()

	go func() {
		ok := m.TryLock()
		if ok {
			m.Unlock()
		}
		result <- ok
	}()
	assert.True(t, <-result)
}

// TestMutex_UnlockByNonOwnerPanics 测试非持有者解锁
func TestMutex_UnlockByNonOwnerPanics(t *testing.T) {
	var m Mutex

	assert.Panics(t, func() { m.Unlock() })

	m.Lock()
	defer m.Unlock()

	panicked := make(chan bool)
	go func() {
		defer func() { panicked <- recover() != nil }()
		m.Unlock()
	}()
	assert.True(t, <-panicked)
}

// TestMutex_Concurrent 测试并发互斥
func TestMutex_Concurrent(t *testing.T) {
	var m Mutex
	counter := 0

	numGoroutines := 50
	numOps := 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				m.Lock()
				m.Lock()
				counter++
				m.Unlock()
				m.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, numGoroutines*numOps, counter)
}
