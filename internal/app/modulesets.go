// Package app 提供模块集合清单
//
// modulesets.go 集中维护"哪些模块属于哪个 Tier"，是 Bootstrap 组装的唯一模块来源。
package app

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-evchan/internal/core/metrics"
	"github.com/dep2p/go-evchan/internal/core/runtime"
)

// FoundationModules 基础层模块组合 (Tier 1)
//
// 提供全局时钟。clk 为 nil 时使用真实时钟。
func FoundationModules(clk clock.Clock) fx.Option {
	if clk == nil {
		clk = clock.New()
	}
	return fx.Options(
		fx.Provide(func() clock.Clock { return clk }),
	)
}

// CoreModules 核心模块组合 (Tier 2)
//
// metrics 提供 DispatchObserver，runtime 依赖它创建生命周期事件。
func CoreModules() fx.Option {
	return fx.Options(
		metrics.Module,
		runtime.Module(),
	)
}
