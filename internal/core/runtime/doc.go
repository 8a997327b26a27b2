// Package runtime 提供运行时环境（事件通道的参考 owner）
//
// Environment 持有一组生命周期事件，只对外公开它们的注册器，
// 自己在状态迁移时触发事件：
//
//	Created ──Load──▶ Loaded ──Start──▶ Running ◀──Resume── Suspended
//	                                       │  ──Suspend──▶     │
//	                                       └──Terminate──▶ Terminated ◀─┘
//
// 每次迁移先更新状态，再在调用方 goroutine 上依次触发：
//   - 具体事件（Loaded / Started / Suspended / Resumed / Terminating）
//   - StateChanged（携带 From / To）
//
// Terminating 在状态变为 Terminated 之前触发，订阅者可借此做清理。
// Step 仅在 Running 状态下触发 EnterFrame，帧号单调递增。
//
// # 使用示例
//
//	env := runtime.NewEnvironment(runtime.WithName("main"))
//
//	h := event.NewHandler(func(env *runtime.Environment, args runtime.FrameArgs) {
//	    // 每帧逻辑
//	})
//	env.EnterFrameHandlers().Register(h)
//	defer env.EnterFrameHandlers().Deregister(h)
//
//	_ = env.Load()
//	_ = env.Start(ctx)
//	env.Step()
//
// # Fx 模块
//
// Module() 提供 *Environment，并在 OnStart 中执行 Load + Start，
// OnStop 中执行 Terminate。
package runtime
