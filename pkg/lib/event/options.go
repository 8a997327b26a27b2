package event

import (
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-evchan/pkg/interfaces"
)

var defaultClock = clock.New()

// settings 事件通道设置
type settings struct {
	name          string
	observer      pkgif.DispatchObserver
	clock         clock.Clock
	slowThreshold time.Duration
}

// Option 事件通道选项
type Option func(*settings)

// WithName 设置事件名称，用于日志和指标标签
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithObserver 设置分发观测者
//
// 传入 nil 等同于不设置。
func WithObserver(observer pkgif.DispatchObserver) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

// WithClock 设置计时使用的时钟（测试中可传入 clock.NewMock()）
func WithClock(clk clock.Clock) Option {
	return func(s *settings) {
		s.clock = clk
	}
}

// WithSlowThreshold 设置慢处理器告警阈值，0 表示不告警
func WithSlowThreshold(d time.Duration) Option {
	return func(s *settings) {
		s.slowThreshold = d
	}
}
