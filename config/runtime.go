package config

import (
	"fmt"
	"time"
)

// RuntimeConfig 运行时环境配置
type RuntimeConfig struct {
	// Name 运行时名称，用于日志
	Name string `json:"name"`

	// SuspendOnStart 启动后立即进入挂起状态
	SuspendOnStart bool `json:"suspend_on_start"`

	// FrameInterval 帧间隔
	// 默认值: 16ms
	FrameInterval Duration `json:"frame_interval"`
}

// DefaultRuntimeConfig 返回默认运行时配置
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Name:          "main",
		FrameInterval: Duration(16 * time.Millisecond),
	}
}

// Validate 验证运行时配置
func (c *RuntimeConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("runtime: name cannot be empty")
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("runtime: frame_interval must be > 0, got %s", c.FrameInterval)
	}
	return nil
}
