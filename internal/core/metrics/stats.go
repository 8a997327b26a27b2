package metrics

import (
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Stats 单个事件的分发统计快照
type Stats struct {
	Raises           int64         // Raise 次数
	Invocations      int64         // 处理器调用次数
	Skips            int64         // 分发中被跳过的次数
	InvokeTime       time.Duration // 处理器调用累计耗时
	LastDispatchSize int           // 最近一次分发快照大小
	RaiseRate        float64       // 最近 60 秒平均 Raise 速率（次/秒）
	LastRaise        time.Time     // 最近一次 Raise 时间
}

// AvgInvokeTime 平均调用耗时
func (s Stats) AvgInvokeTime() time.Duration {
	if s.Invocations == 0 {
		return 0
	}
	return s.InvokeTime / time.Duration(s.Invocations)
}

// eventStats 单个事件的计数器（原子操作）
type eventStats struct {
	raises       atomic.Int64
	invocations  atomic.Int64
	skips        atomic.Int64
	invokeNanos  atomic.Int64
	dispatchSize atomic.Int64
	lastRaise    atomic.Int64 // Unix nano
	raiseRate    *RateMeter
}

func newEventStats(clk clock.Clock) *eventStats {
	return &eventStats{raiseRate: NewRateMeter(clk)}
}

func (s *eventStats) snapshot() Stats {
	st := Stats{
		Raises:           s.raises.Load(),
		Invocations:      s.invocations.Load(),
		Skips:            s.skips.Load(),
		InvokeTime:       time.Duration(s.invokeNanos.Load()),
		LastDispatchSize: int(s.dispatchSize.Load()),
		RaiseRate:        s.raiseRate.Rate(),
	}
	if ns := s.lastRaise.Load(); ns != 0 {
		st.LastRaise = time.Unix(0, ns)
	}
	return st
}
