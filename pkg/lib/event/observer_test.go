package event

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-evchan/pkg/lib/log"
	"github.com/dep2p/go-evchan/tests/mocks"
)

// TestObserver_RaiseInvokeSkip 测试观测者收到分发回调
func TestObserver_RaiseInvokeSkip(t *testing.T) {
	obs := mocks.NewMockDispatchObserver()
	e := New[string, int](WithName("test.observed"), WithObserver(obs))

	s3 := NewHandler(func(string, int) {})
	s1 := NewHandler(func(string, int) { e.Handlers().Deregister(s3) })
	s2 := NewHandler(func(string, int) {})
	e.Handlers().Register(s1)
	e.Handlers().Register(s2)
	e.Handlers().Register(s3)

	e.Raise("owner", 0)

	raises, invokes, skips := obs.Counts()
	assert.Equal(t, 1, raises)
	assert.Equal(t, 2, invokes)
	assert.Equal(t, 1, skips)

	require.Len(t, obs.RaiseCalls, 1)
	assert.Equal(t, mocks.RaiseCall{Event: "test.observed", DispatchSize: 3}, obs.RaiseCalls[0])
	assert.Equal(t, []string{"test.observed"}, obs.SkipCalls)
}

// TestObserver_EmptyRaise 测试空事件也会通知 OnRaise
func TestObserver_EmptyRaise(t *testing.T) {
	obs := mocks.NewMockDispatchObserver()
	e := New[string, int](WithObserver(obs))

	e.Raise("owner", 0)

	raises, invokes, skips := obs.Counts()
	assert.Equal(t, 1, raises)
	assert.Zero(t, invokes)
	assert.Zero(t, skips)
	assert.Equal(t, 0, obs.RaiseCalls[0].DispatchSize)
}

// TestObserver_NilObserver 测试 WithObserver(nil) 等同未设置
func TestObserver_NilObserver(t *testing.T) {
	e := New[string, int](WithObserver(nil))
	e.Handlers().Register(NewHandler(func(string, int) {}))

	assert.NotPanics(t, func() { e.Raise("owner", 0) })
}

// TestObserver_SlowHandler 测试使用 mock 时钟检测慢处理器
func TestObserver_SlowHandler(t *testing.T) {
	mock := clock.NewMock()
	obs := mocks.NewMockDispatchObserver()

	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	e := New[string, int](
		WithName("test.slow"),
		WithObserver(obs),
		WithClock(mock),
		WithSlowThreshold(100*time.Millisecond),
	)

	fast := NewHandler(func(string, int) { mock.Add(10 * time.Millisecond) })
	slow := NewHandler(func(string, int) { mock.Add(250 * time.Millisecond) })
	e.Handlers().Register(fast)
	e.Handlers().Register(slow)

	e.Raise("owner", 0)

	require.Len(t, obs.InvokeCalls, 2)
	assert.Equal(t, 10*time.Millisecond, obs.InvokeCalls[0].Elapsed)
	assert.Equal(t, 250*time.Millisecond, obs.InvokeCalls[1].Elapsed)

	output := buf.String()
	assert.Contains(t, output, "慢处理器检测")
	assert.Contains(t, output, "event=test.slow")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("慢处理器检测")))
}
