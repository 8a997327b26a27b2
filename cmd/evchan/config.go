package main

import (
	"flag"
	"time"

	"github.com/dep2p/go-evchan/config"
)

// ============================================================================
//                              配置加载（CLI 专用）
// ============================================================================

// overrides 显式设置的命令行参数
type overrides struct {
	metricsAddr *string
	logLevel    *string
	interval    *time.Duration
}

// currentOverrides 收集被显式设置的命令行参数
func currentOverrides() overrides {
	var o overrides
	if isFlagSet("metrics-addr") {
		o.metricsAddr = metricsAddr
	}
	if isFlagSet("log-level") {
		o.logLevel = logLevel
	}
	if isFlagSet("interval") && *interval > 0 {
		o.interval = interval
	}
	return o
}

// buildConfig 构建配置
//
// 配置优先级（从高到低）：
//  1. 命令行参数（运行时覆盖）
//  2. 环境变量（EVCHAN_* 前缀）
//  3. 配置文件（持久化配置）
//  4. 默认值
func buildConfig(path string, o overrides) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	// 1. 配置文件
	if path != "" {
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.NewConfig()
	}

	// 2. 环境变量
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	// 3. 命令行参数
	if o.metricsAddr != nil {
		cfg.Metrics.ListenAddr = *o.metricsAddr
		if cfg.Metrics.ListenAddr != "" {
			cfg.Metrics.Enabled = true
		}
	}
	if o.logLevel != nil {
		cfg.Log.Level = *o.logLevel
	}
	if o.interval != nil {
		cfg.Runtime.FrameInterval = config.Duration(*o.interval)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFlagSet 检查命令行参数是否被显式设置
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
