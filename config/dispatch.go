package config

import (
	"fmt"
	"time"
)

// DispatchConfig 事件分发配置
type DispatchConfig struct {
	// WarnOnSlowHandler 是否对慢处理器输出告警日志
	WarnOnSlowHandler bool `json:"warn_on_slow_handler"`

	// SlowHandlerThreshold 单个处理器调用超过该耗时视为慢处理器
	// 默认值: 16ms（一帧）
	SlowHandlerThreshold Duration `json:"slow_handler_threshold"`
}

// DefaultDispatchConfig 返回默认分发配置
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		WarnOnSlowHandler:    true,
		SlowHandlerThreshold: Duration(16 * time.Millisecond),
	}
}

// Validate 验证分发配置
func (c *DispatchConfig) Validate() error {
	if c.SlowHandlerThreshold < 0 {
		return fmt.Errorf("dispatch: slow_handler_threshold must be >= 0, got %s", c.SlowHandlerThreshold)
	}
	if c.WarnOnSlowHandler && c.SlowHandlerThreshold == 0 {
		return fmt.Errorf("dispatch: slow_handler_threshold required when warn_on_slow_handler is set")
	}
	return nil
}

// EffectiveThreshold 返回生效的慢处理器阈值，未开启告警时为 0
func (c *DispatchConfig) EffectiveThreshold() time.Duration {
	if !c.WarnOnSlowHandler {
		return 0
	}
	return c.SlowHandlerThreshold.Duration()
}
