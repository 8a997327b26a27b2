// Package main 提供 evchan 命令行入口
//
// evchan 组装运行时环境，按固定帧间隔从多个 goroutine 推进帧，
// 在控制台打印生命周期事件，并可选地通过 HTTP 暴露分发指标。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-evchan"
	"github.com/dep2p/go-evchan/internal/app"
	"github.com/dep2p/go-evchan/internal/core/runtime"
	"github.com/dep2p/go-evchan/pkg/lib/event"
	"github.com/dep2p/go-evchan/pkg/lib/log"
)

var logger = log.Logger("evchan/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
//
//   命令行参数：运行时覆盖 / 快速测试
//   JSON 配置文件：持久化配置
//
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile  = flag.String("config", "", "配置文件路径")
	metricsAddr = flag.String("metrics-addr", "", "指标 HTTP 监听地址（如 :9100，空 = 不启动）")
	logLevel    = flag.String("log-level", "", "日志级别（subsystem=level,...,default）")
	raisers     = flag.Int("raisers", 1, "并发推进帧的 goroutine 数")
	interval    = flag.Duration("interval", 0, "帧间隔（0 = 使用配置文件的 runtime.frame_interval）")
	fxLog       = flag.Bool("fx-log", false, "输出 fx 依赖注入日志")
	showVersion = flag.Bool("version", false, "显示版本信息")
	showHelp    = flag.Bool("help", false, "显示帮助信息")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		printVersion()
		return nil
	}
	if *showHelp {
		printHelp()
		return nil
	}

	cfg, err := buildConfig(*configFile, currentOverrides())
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}
	if *raisers < 1 {
		return fmt.Errorf("raisers 必须 >= 1，当前 %d", *raisers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("📦 %s\n", evchan.VersionInfo())
	logger.Info("启动 evchan", "version", evchan.Version, "commit", evchan.GitCommit, "buildDate", evchan.BuildDate)

	rt, err := app.NewBootstrap(cfg, app.WithFxLogging(*fxLog)).Build(ctx)
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}

	console := newConsole(os.Stdout)
	console.subscribe(rt.Environment)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := rt.Stop(stopCtx); err != nil {
			logger.Error("停止失败", "error", err)
		}
		// 终止时运行时已清空订阅，这里返回 false
		console.unsubscribe(rt.Environment)
	}()

	printRuntimeInfo(rt)
	fmt.Println("运行中，按 Ctrl+C 退出")

	return serve(ctx, rt, cfg.Runtime.FrameInterval.Duration(), *raisers)
}

// serve 运行帧推进与指标服务，直到收到信号或运行时终止
func serve(ctx context.Context, rt *app.Runtime, frameInterval time.Duration, n int) error {
	env := rt.Environment

	// 运行时终止时也结束所有 goroutine
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-env.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			return raiseFrames(gctx, env, frameInterval)
		})
	}

	if addr := rt.Config.Metrics.ListenAddr; addr != "" {
		srv := newMetricsServer(rt, addr)
		g.Go(func() error {
			logger.Info("指标服务已启动", "addr", addr, "path", rt.Config.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("指标服务失败: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err := g.Wait()
	fmt.Println("\n正在关闭...")
	return err
}

// raiseFrames 按间隔推进帧
//
// 运行时挂起时 Step 不触发事件；运行时终止后返回。
func raiseFrames(ctx context.Context, env *runtime.Environment, frameInterval time.Duration) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-env.Done():
			return nil
		case <-ticker.C:
			env.Step()
		}
	}
}

// newMetricsServer 创建指标 HTTP 服务
func newMetricsServer(rt *app.Runtime, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(rt.Config.Metrics.Path, promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// ============================================================================
//                              控制台订阅者
// ============================================================================

// console 把运行时事件打印到控制台
type console struct {
	out    io.Writer
	frames atomic.Uint64

	stateChanged *event.Handler[*runtime.Environment, runtime.StateChangedArgs]
	enterFrame   *event.Handler[*runtime.Environment, runtime.FrameArgs]
	terminating  *event.Handler[*runtime.Environment, event.Empty]
}

func newConsole(out io.Writer) *console {
	c := &console{out: out}
	c.stateChanged = event.BindMethod(c, (*console).onStateChanged)
	c.enterFrame = event.BindMethod(c, (*console).onEnterFrame)
	c.terminating = event.BindMethod(c, (*console).onTerminating)
	return c
}

func (c *console) subscribe(env *runtime.Environment) {
	env.StateChangedHandlers().Register(c.stateChanged)
	env.EnterFrameHandlers().Register(c.enterFrame)
	env.TerminatingHandlers().Register(c.terminating)
}

func (c *console) unsubscribe(env *runtime.Environment) {
	env.StateChangedHandlers().Deregister(c.stateChanged)
	env.EnterFrameHandlers().Deregister(c.enterFrame)
	env.TerminatingHandlers().Deregister(c.terminating)
}

func (c *console) onStateChanged(env *runtime.Environment, args runtime.StateChangedArgs) {
	fmt.Fprintf(c.out, "[%s] %s -> %s\n", env.Name(), args.From, args.To)
}

// onEnterFrame 每 100 帧打印一次
func (c *console) onEnterFrame(env *runtime.Environment, args runtime.FrameArgs) {
	if c.frames.Add(1)%100 == 0 {
		fmt.Fprintf(c.out, "[%s] frame=%d uptime=%s\n", env.Name(), args.Frame, env.Uptime().Truncate(time.Millisecond))
	}
}

func (c *console) onTerminating(env *runtime.Environment, _ event.Empty) {
	fmt.Fprintf(c.out, "[%s] terminating after %d frames\n", env.Name(), c.frames.Load())
}

// ============================================================================
//                              信息输出
// ============================================================================

// printRuntimeInfo 打印运行时信息
func printRuntimeInfo(rt *app.Runtime) {
	env := rt.Environment
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Printf("║ runtime:  %-50s ║\n", env.Name())
	fmt.Printf("║ session:  %-50s ║\n", env.SessionID())
	fmt.Printf("║ state:    %-50s ║\n", env.State())
	metricsInfo := "disabled"
	if rt.Collector != nil {
		metricsInfo = "enabled"
		if addr := rt.Config.Metrics.ListenAddr; addr != "" {
			metricsInfo = "http://" + addr + rt.Config.Metrics.Path
		}
	}
	fmt.Printf("║ metrics:  %-50s ║\n", metricsInfo)
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
}

// printVersion 打印版本信息
func printVersion() {
	fmt.Printf("evchan %s\n", evchan.Version)
	if evchan.GitCommit != "" {
		fmt.Printf("  commit: %s\n", evchan.GitCommit)
	}
	if evchan.BuildDate != "" {
		fmt.Printf("  built:  %s\n", evchan.BuildDate)
	}
}

// printHelp 打印帮助信息
func printHelp() {
	fmt.Println("evchan - 线程安全的事件通道运行时演示")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  evchan [选项]")
	fmt.Println()
	fmt.Println("选项:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("环境变量:")
	fmt.Println("  EVCHAN_LOG_LEVEL                日志级别（subsystem=level,...,default）")
	fmt.Println("  EVCHAN_LOG_FORMAT               日志格式（text/json）")
	fmt.Println("  EVCHAN_LOG_FILE                 日志文件路径")
	fmt.Println("  EVCHAN_SLOW_HANDLER_THRESHOLD   慢处理器阈值（如 16ms，0 = 关闭）")
	fmt.Println("  EVCHAN_METRICS_ENABLED          启用指标 (true/false)")
	fmt.Println("  EVCHAN_METRICS_ADDR             指标 HTTP 监听地址")
	fmt.Println("  EVCHAN_RUNTIME_NAME             运行时名称")
}
