package config

import (
	"fmt"
	"strings"
)

// LogConfig 日志配置
//
// Level 与 EVCHAN_LOG_LEVEL 语法相同：subsystem=level,...,defaultLevel
type LogConfig struct {
	// Level 日志级别
	Level string `json:"level"`

	// Format 输出格式（text / json）
	Format string `json:"format"`

	// File 日志文件路径，空表示输出到 stderr
	File string `json:"file,omitempty"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c *LogConfig) Validate() error {
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Format)
	}

	for _, part := range strings.Split(c.Level, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, level, found := strings.Cut(part, "="); found {
			part = level
		}
		if !validLevel(part) {
			return fmt.Errorf("log: unknown level %q", part)
		}
	}
	return nil
}

func validLevel(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}
