// Package app 提供 evchan 应用编排层
//
// app 包负责：
// - fx 模块组装
// - 日志配置
// - 生命周期管理
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-evchan/config"
	"github.com/dep2p/go-evchan/internal/core/metrics"
	"github.com/dep2p/go-evchan/internal/core/runtime"
	"github.com/dep2p/go-evchan/internal/util/logger"
)

// Bootstrap 应用引导程序
//
// Bootstrap 负责：
// - 解析配置
// - 组装 fx 模块
// - 管理应用生命周期
type Bootstrap struct {
	config *config.Config
	opts   BuildOptions
	fxApp  *fx.App

	logFile *os.File

	env       *runtime.Environment
	registry  *prometheus.Registry
	collector *metrics.Collector
}

// NewBootstrap 创建引导程序
//
// cfg 为 nil 时使用默认配置。
func NewBootstrap(cfg *config.Config, opts ...BootstrapOption) *Bootstrap {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	b := &Bootstrap{
		config: cfg,
		opts:   DefaultBuildOptions(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Config 返回使用的配置
func (b *Bootstrap) Config() *config.Config {
	return b.config
}

// Build 构建并启动 fx 应用
//
// 启动完成后运行时环境处于 Running（或 SuspendOnStart 时的 Suspended）状态。
func (b *Bootstrap) Build(ctx context.Context) (*Runtime, error) {
	if err := b.config.Validate(); err != nil {
		return nil, fmt.Errorf("配置无效: %w", err)
	}

	// 应用日志配置（必须在所有模块初始化之前）
	if err := b.setupLogging(); err != nil {
		return nil, fmt.Errorf("设置日志失败: %w", err)
	}

	fxLogger, err := b.fxLogger()
	if err != nil {
		return nil, fmt.Errorf("创建 fx 日志失败: %w", err)
	}

	b.fxApp = fx.New(
		fx.Options(b.setupModules()...),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: fxLogger}
		}),
		fx.Populate(&b.env, &b.registry, &b.collector),
	)
	if err := b.fxApp.Err(); err != nil {
		b.closeLogFile()
		return nil, fmt.Errorf("组装模块失败: %w", err)
	}

	startCtx, cancel := context.WithTimeout(ctx, b.opts.StartTimeout)
	defer cancel()

	if err := b.fxApp.Start(startCtx); err != nil {
		b.closeLogFile()
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}

	return &Runtime{
		Config:      b.config,
		Environment: b.env,
		Registry:    b.registry,
		Collector:   b.collector,
		stop:        b.Stop,
	}, nil
}

// Stop 停止应用
func (b *Bootstrap) Stop(ctx context.Context) error {
	if b.fxApp == nil {
		return nil
	}
	defer b.closeLogFile()

	stopCtx, cancel := context.WithTimeout(ctx, b.opts.StopTimeout)
	defer cancel()

	return b.fxApp.Stop(stopCtx)
}

// setupModules 组装所有 fx 模块
func (b *Bootstrap) setupModules() []fx.Option {
	return []fx.Option{
		// 配置（Tier 0）
		fx.Supply(b.config),

		// 基础设施（Tier 1）
		FoundationModules(b.opts.Clock),

		// 核心模块（Tier 2）
		CoreModules(),
	}
}

// fxLogger 返回 fx 事件日志使用的 zap Logger
func (b *Bootstrap) fxLogger() (*zap.Logger, error) {
	if !b.opts.FxLogging {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// setupLogging 配置日志
//
// 级别和格式来自 config.Log；如果指定了 File，将所有日志重定向到文件
func (b *Bootstrap) setupLogging() error {
	logger.Configure(b.config.Log.Level, b.config.Log.Format)

	if b.config.Log.File == "" {
		return nil
	}

	// 打开日志文件（追加模式），Stop 时关闭
	file, err := os.OpenFile(b.config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %w", err)
	}
	b.logFile = file

	logger.SetOutput(file)

	log := logger.Logger("bootstrap")
	log.Info("日志文件初始化成功", "path", b.config.Log.File)

	return nil
}

func (b *Bootstrap) closeLogFile() {
	if b.logFile == nil {
		return
	}
	logger.SetOutput(os.Stderr)
	_ = b.logFile.Close()
	b.logFile = nil
}

// ============================================================================
//                              默认超时
// ============================================================================

const (
	defaultStartTimeout = 30 * time.Second
	defaultStopTimeout  = 30 * time.Second
)
