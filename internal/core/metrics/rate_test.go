package metrics

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
)

// TestRateMeter_Window 测试滑动窗口
func TestRateMeter_Window(t *testing.T) {
	mock := clock.NewMock()
	r := NewRateMeter(mock)

	r.Mark(30)
	mock.Add(time.Second)
	r.Mark(30)

	assert.Equal(t, int64(60), r.Total())
	assert.InDelta(t, 1.0, r.Rate(), 0.001)

	// 59 秒后第一个桶被覆盖
	mock.Add(59 * time.Second)
	assert.Equal(t, int64(30), r.Total())

	// 超过整个窗口后清空
	mock.Add(2 * time.Minute)
	assert.Zero(t, r.Total())
}

// TestRateMeter_PartialSeconds 测试不足一秒不移动窗口
func TestRateMeter_PartialSeconds(t *testing.T) {
	mock := clock.NewMock()
	r := NewRateMeter(mock)
	start := r.LastUpdate()

	mock.Add(400 * time.Millisecond)
	r.Mark(1)
	mock.Add(400 * time.Millisecond)
	r.Mark(1)

	assert.Equal(t, start, r.LastUpdate())

	mock.Add(400 * time.Millisecond)
	r.Mark(1)
	assert.Equal(t, start.Add(time.Second), r.LastUpdate())
	assert.Equal(t, int64(3), r.Total())
}

// TestRateMeter_DefaultClock 测试默认时钟
func TestRateMeter_DefaultClock(t *testing.T) {
	r := NewRateMeter(nil)
	r.Mark(5)
	assert.Equal(t, int64(5), r.Total())
}
