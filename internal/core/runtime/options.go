package runtime

import (
	"time"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-evchan/pkg/interfaces"
)

type options struct {
	name          string
	clock         clock.Clock
	observer      pkgif.DispatchObserver
	slowThreshold time.Duration
}

func defaultOptions() options {
	return options{
		name:  "main",
		clock: clock.New(),
	}
}

// Option 运行时环境选项
type Option func(*options)

// WithName 设置运行时名称
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithClock 设置时钟
func WithClock(clk clock.Clock) Option {
	return func(o *options) {
		if clk != nil {
			o.clock = clk
		}
	}
}

// WithObserver 设置所有生命周期事件共用的分发观测者
func WithObserver(observer pkgif.DispatchObserver) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithSlowThreshold 设置慢处理器告警阈值
func WithSlowThreshold(d time.Duration) Option {
	return func(o *options) {
		o.slowThreshold = d
	}
}
