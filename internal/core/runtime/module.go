package runtime

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-evchan/config"
	pkgif "github.com/dep2p/go-evchan/pkg/interfaces"
)

// Params 运行时模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config         `optional:"true"`
	Observer   pkgif.DispatchObserver `optional:"true"`
	Clock      clock.Clock            `optional:"true"`
}

// NewFromParams 从参数创建运行时环境
func NewFromParams(p Params) *Environment {
	cfg := p.UnifiedCfg
	if cfg == nil {
		cfg = config.NewConfig()
	}

	return NewEnvironment(
		WithName(cfg.Runtime.Name),
		WithClock(p.Clock),
		WithObserver(p.Observer),
		WithSlowThreshold(cfg.Dispatch.EffectiveThreshold()),
	)
}

// Module 返回 Fx 模块
//
// 提供运行时环境作为全局单例，随应用启动而加载并运行，随应用停止而终止。
func Module() fx.Option {
	return fx.Module("runtime",
		fx.Provide(
			NewFromParams,
		),
		fx.Invoke(registerLifecycleHooks),
	)
}

// lifecycleHooksParams 生命周期钩子参数
type lifecycleHooksParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Environment *Environment
	UnifiedCfg  *config.Config `optional:"true"`
}

// registerLifecycleHooks 注册生命周期钩子
func registerLifecycleHooks(params lifecycleHooksParams) {
	suspend := params.UnifiedCfg != nil && params.UnifiedCfg.Runtime.SuspendOnStart

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			env := params.Environment
			if err := env.Load(); err != nil {
				return err
			}
			if err := env.Start(ctx); err != nil {
				return err
			}
			if suspend {
				return env.Suspend()
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return params.Environment.Terminate()
		},
	})
}
