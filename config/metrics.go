package config

import (
	"fmt"
	"regexp"
	"strings"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DefaultMaxEvents 默认最多跟踪的事件名称数
const DefaultMaxEvents = 1024

// MetricsConfig 分发指标配置
type MetricsConfig struct {
	// Enabled 是否启用指标收集
	Enabled bool `json:"enabled"`

	// Namespace Prometheus 指标命名空间
	Namespace string `json:"namespace"`

	// ListenAddr 指标 HTTP 服务监听地址，空表示不启动
	ListenAddr string `json:"listen_addr"`

	// Path 指标 HTTP 路径
	Path string `json:"path"`

	// MaxEvents 最多跟踪的事件名称数，超出时淘汰最久未触发的事件
	// 默认值: 1024
	MaxEvents int `json:"max_events"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "evchan",
		Path:      "/metrics",
		MaxEvents: DefaultMaxEvents,
	}
}

// Validate 验证指标配置
func (c *MetricsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !namespacePattern.MatchString(c.Namespace) {
		return fmt.Errorf("metrics: invalid namespace %q", c.Namespace)
	}
	if c.MaxEvents < 0 {
		return fmt.Errorf("metrics: max_events must be >= 0, got %d", c.MaxEvents)
	}
	if c.ListenAddr != "" && !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("metrics: path must start with '/', got %q", c.Path)
	}
	return nil
}
