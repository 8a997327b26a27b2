// Package config 提供统一的配置管理
//
// 本包采用与组件一一对应的子配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义，带默认值和 Validate
//   - 支持从 JSON 文件加载、保存
//   - 支持 EVCHAN_* 环境变量覆盖
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Dispatch.SlowHandlerThreshold = config.Duration(50 * time.Millisecond)
//
//	cfg, err := config.LoadFromFile("evchan.json")
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
)

// ErrNilConfig 配置为空
var ErrNilConfig = errors.New("config is nil")

// Config 是 go-evchan 的完整配置结构
//
//   - Dispatch: 事件分发（慢处理器告警）
//   - Metrics: 分发指标
//   - Log: 日志
//   - Runtime: 运行时环境
type Config struct {
	// Dispatch 事件分发配置
	Dispatch DispatchConfig `json:"dispatch"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Log 日志配置
	Log LogConfig `json:"log"`

	// Runtime 运行时环境配置
	Runtime RuntimeConfig `json:"runtime"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Dispatch: DefaultDispatchConfig(),
		Metrics:  DefaultMetricsConfig(),
		Log:      DefaultLogConfig(),
		Runtime:  DefaultRuntimeConfig(),
	}
}

// Validate 验证配置的有效性
//
// 验证所有子配置，返回合并后的全部错误（multierr），而不是只返回第一个。
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}

	return multierr.Combine(
		c.Dispatch.Validate(),
		c.Metrics.Validate(),
		c.Log.Validate(),
		c.Runtime.Validate(),
	)
}

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保持默认值。
//
// 示例 JSON:
//
//	{
//	  "dispatch": {"slow_handler_threshold": "50ms"},
//	  "metrics": {"enabled": true, "namespace": "evchan"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 序列化配置
func (c *Config) ToJSON() ([]byte, error) {
	if c == nil {
		return nil, ErrNilConfig
	}
	return json.MarshalIndent(c, "", "  ")
}

// LoadFromFile 从 JSON 文件加载配置并验证
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := FromJSON(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// SaveToFile 将配置保存为 JSON 文件
func (c *Config) SaveToFile(path string) error {
	data, err := c.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
