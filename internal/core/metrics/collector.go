package metrics

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-evchan/config"
	pkgif "github.com/dep2p/go-evchan/pkg/interfaces"
	"github.com/dep2p/go-evchan/pkg/lib/log"
)

var logger = log.Logger("core/metrics")

// unnamedEvent 未命名事件使用的标签值
const unnamedEvent = "unnamed"

// DefaultMaxEvents 默认最多跟踪的事件名称数，与统一配置的默认值一致
const DefaultMaxEvents = config.DefaultMaxEvents

// ============================================================================
// Collector 实现
// ============================================================================

// Collector 分发指标收集器
//
// Collector 实现 DispatchObserver，可以同时挂到任意多个事件通道上，
// 按事件名称分别统计。所有方法并发安全。
//
// 跟踪的事件名称数有上限（Config.MaxEvents），超出时淘汰最久未触发的事件，
// 同时删除它的 Prometheus 标签，避免标签基数无限增长。
type Collector struct {
	clock clock.Clock

	raises       *prometheus.CounterVec
	invocations  *prometheus.CounterVec
	skips        *prometheus.CounterVec
	invokeTime   *prometheus.HistogramVec
	dispatchSize *prometheus.GaugeVec

	// mu 淘汰与删除在写锁下进行，标签更新在读锁下进行，
	// 保证被淘汰事件的标签不会被重新创建
	mu     sync.RWMutex
	events *lru.Cache[string, *eventStats]
}

// NewCollector 创建收集器并注册到 reg
//
// clk 为 nil 时使用系统时钟。
func NewCollector(cfg Config, reg prometheus.Registerer, clk clock.Clock) (*Collector, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}
	if clk == nil {
		clk = clock.New()
	}

	ns := cfg.Namespace
	labels := []string{"event"}

	c := &Collector{
		clock: clk,
		raises: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "event_raises_total",
			Help:      "Number of Raise calls per event.",
		}, labels),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "event_invocations_total",
			Help:      "Number of handler invocations per event.",
		}, labels),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "event_skips_total",
			Help:      "Handlers skipped because they were deregistered mid-dispatch.",
		}, labels),
		invokeTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "event_invocation_seconds",
			Help:      "Handler invocation latency.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, labels),
		dispatchSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "event_last_dispatch_size",
			Help:      "Handlers in the most recent dispatch snapshot.",
		}, labels),
	}

	size := cfg.MaxEvents
	if size <= 0 {
		size = DefaultMaxEvents
	}
	events, err := lru.NewWithEvict[string, *eventStats](size, c.onEvict)
	if err != nil {
		return nil, fmt.Errorf("metrics: create event cache: %w", err)
	}
	c.events = events

	for _, col := range []prometheus.Collector{c.raises, c.invocations, c.skips, c.invokeTime, c.dispatchSize} {
		if err := reg.Register(col); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				return nil, fmt.Errorf("metrics: namespace %q already registered: %w", ns, err)
			}
			return nil, fmt.Errorf("metrics: register collector: %w", err)
		}
	}

	return c, nil
}

// ============================================================================
// DispatchObserver 接口实现
// ============================================================================

// OnRaise 记录一次 Raise
func (c *Collector) OnRaise(event string, dispatchSize int) {
	event = labelFor(event)
	c.withStats(event, func(s *eventStats) {
		s.raises.Add(1)
		s.dispatchSize.Store(int64(dispatchSize))
		s.lastRaise.Store(c.clock.Now().UnixNano())
		s.raiseRate.Mark(1)

		c.raises.WithLabelValues(event).Inc()
		c.dispatchSize.WithLabelValues(event).Set(float64(dispatchSize))
	})
}

// OnInvoke 记录一次处理器调用
func (c *Collector) OnInvoke(event string, elapsed time.Duration) {
	event = labelFor(event)
	c.withStats(event, func(s *eventStats) {
		s.invocations.Add(1)
		s.invokeNanos.Add(int64(elapsed))

		c.invocations.WithLabelValues(event).Inc()
		c.invokeTime.WithLabelValues(event).Observe(elapsed.Seconds())
	})
}

// OnSkip 记录一次跳过
func (c *Collector) OnSkip(event string) {
	event = labelFor(event)
	c.withStats(event, func(s *eventStats) {
		s.skips.Add(1)
		c.skips.WithLabelValues(event).Inc()
	})
}

// ============================================================================
// Reporter 接口实现
// ============================================================================

// Snapshot 返回单个事件的统计快照
func (c *Collector) Snapshot(event string) (Stats, bool) {
	s, ok := c.events.Peek(labelFor(event))
	if !ok {
		return Stats{}, false
	}
	return s.snapshot(), true
}

// SnapshotAll 返回所有事件的统计快照
func (c *Collector) SnapshotAll() map[string]Stats {
	out := make(map[string]Stats, c.events.Len())
	for _, name := range c.events.Keys() {
		if s, ok := c.events.Peek(name); ok {
			out[name] = s.snapshot()
		}
	}
	return out
}

// Events 返回已观测到的事件名称（排序）
func (c *Collector) Events() []string {
	names := c.events.Keys()
	sort.Strings(names)
	return names
}

// Reset 清空所有统计
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events.Purge()

	c.raises.Reset()
	c.invocations.Reset()
	c.skips.Reset()
	c.invokeTime.Reset()
	c.dispatchSize.Reset()
}

// TrimIdle 清理自 since 以来没有 Raise 的事件统计，返回清理数量
//
// 被清理事件的 Prometheus 标签一并删除。
func (c *Collector) TrimIdle(since time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	trimmed := 0
	for _, name := range c.events.Keys() {
		s, ok := c.events.Peek(name)
		if !ok {
			continue
		}
		if time.Unix(0, s.lastRaise.Load()).Before(since) && c.events.Remove(name) {
			trimmed++
		}
	}

	if trimmed > 0 {
		logger.Debug("清理空闲事件统计", "count", trimmed)
	}
	return trimmed
}

// ============================================================================
// 内部方法
// ============================================================================

// withStats 获取或创建事件统计并在锁内执行 fn
//
// 已跟踪的事件走读锁快路径；新事件在写锁下加入，加入时可能淘汰其他事件。
func (c *Collector) withStats(event string, fn func(*eventStats)) {
	c.mu.RLock()
	if s, ok := c.events.Get(event); ok {
		fn(s)
		c.mu.RUnlock()
		return
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.events.Get(event)
	if !ok {
		s = newEventStats(c.clock)
		c.events.Add(event, s)
	}
	fn(s)
}

// onEvict 事件统计被淘汰或移除时删除对应的 Prometheus 标签
func (c *Collector) onEvict(name string, _ *eventStats) {
	c.raises.DeleteLabelValues(name)
	c.invocations.DeleteLabelValues(name)
	c.skips.DeleteLabelValues(name)
	c.invokeTime.DeleteLabelValues(name)
	c.dispatchSize.DeleteLabelValues(name)
}

func labelFor(event string) string {
	if event == "" {
		return unnamedEvent
	}
	return event
}

// 确保 Collector 实现接口
var (
	_ pkgif.DispatchObserver = (*Collector)(nil)
	_ Reporter               = (*Collector)(nil)
)
