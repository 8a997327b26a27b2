package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
)

// 环境变量名
const (
	EnvSlowHandlerThreshold = "EVCHAN_SLOW_HANDLER_THRESHOLD"
	EnvMetricsEnabled       = "EVCHAN_METRICS_ENABLED"
	EnvMetricsAddr          = "EVCHAN_METRICS_ADDR"
	EnvRuntimeName          = "EVCHAN_RUNTIME_NAME"
	EnvLogLevel             = "EVCHAN_LOG_LEVEL"
	EnvLogFormat            = "EVCHAN_LOG_FORMAT"
	EnvLogFile              = "EVCHAN_LOG_FILE"
)

// ApplyEnv 用 EVCHAN_* 环境变量覆盖配置
//
// 配置优先级（从高到低）：命令行参数 > 环境变量 > 配置文件 > 默认值。
// EVCHAN_LOG_LEVEL / EVCHAN_LOG_FORMAT 同时会被 internal/util/logger 在
// 没有显式配置时直接读取；这里把它们并入 Log 配置，使优先级保持一致。
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}

	var errs error

	if v, ok := os.LookupEnv(EnvSlowHandlerThreshold); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvSlowHandlerThreshold, err))
		} else {
			cfg.Dispatch.SlowHandlerThreshold = Duration(d)
			cfg.Dispatch.WarnOnSlowHandler = d > 0
		}
	}

	if v, ok := os.LookupEnv(EnvMetricsEnabled); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvMetricsEnabled, err))
		} else {
			cfg.Metrics.Enabled = b
		}
	}

	if v, ok := os.LookupEnv(EnvMetricsAddr); ok {
		cfg.Metrics.ListenAddr = v
	}

	if v, ok := os.LookupEnv(EnvRuntimeName); ok && v != "" {
		cfg.Runtime.Name = v
	}

	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.Log.Format = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		cfg.Log.File = v
	}

	return errs
}
