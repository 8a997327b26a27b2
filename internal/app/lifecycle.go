package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dep2p/go-evchan/internal/core/runtime"
)

// App evchan 应用接口
//
// App 提供应用级别的生命周期管理
type App interface {
	// Runtime 返回已组装的运行时
	Runtime() *Runtime

	// Wait 等待退出信号、Stop 或运行时环境终止
	Wait()

	// Stop 停止应用
	Stop() error
}

// internalApp App 的内部实现
type internalApp struct {
	bootstrap *Bootstrap
	runtime   *Runtime
	stopOnce  sync.Once
	stopped   chan struct{}
	stopErr   error
}

// RunApp 运行 evchan 应用
//
// 这是一个便捷函数：
// - 构建并启动 fx 应用
// - 等待退出信号
// - 优雅关闭
//
// 示例:
//
//	a, err := app.RunApp(ctx, app.NewBootstrap(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	a.Wait()
func RunApp(ctx context.Context, bootstrap *Bootstrap) (App, error) {
	rt, err := bootstrap.Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}

	return &internalApp{
		bootstrap: bootstrap,
		runtime:   rt,
		stopped:   make(chan struct{}),
	}, nil
}

// Runtime 返回已组装的运行时
func (a *internalApp) Runtime() *Runtime {
	return a.runtime
}

// Wait 等待应用收到退出信号
func (a *internalApp) Wait() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	var envDone <-chan struct{}
	if a.runtime != nil && a.runtime.Environment != nil {
		envDone = a.runtime.Environment.Done()
	}

	select {
	case sig := <-signals:
		fmt.Printf("收到信号 %v，正在退出...\n", sig)
	case <-envDone:
	case <-a.stopped:
		return
	}

	// 停止应用
	_ = a.Stop()
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	a.stopOnce.Do(func() {
		close(a.stopped)

		if a.bootstrap == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := a.bootstrap.Stop(ctx); err != nil {
			a.stopErr = fmt.Errorf("停止 bootstrap 失败: %w", err)
		}
	})
	return a.stopErr
}

// Environment 是 Runtime().Environment 的便捷访问
func Environment(a App) *runtime.Environment {
	if a == nil || a.Runtime() == nil {
		return nil
	}
	return a.Runtime().Environment
}
