package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLazyLogger_FollowsOutput 测试 LazyLogger 跟随输出目标
func TestLazyLogger_FollowsOutput(t *testing.T) {
	l := Logger("test/lazy")
	assert.Equal(t, "test/lazy", l.Component())

	buf := &bytes.Buffer{}
	SetOutputWithLevel(buf, LevelInfo)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	l.Info("hello", "k", 1)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "subsystem=test/lazy")
}

// TestLazyLogger_ComponentLevel 测试组件级别
func TestLazyLogger_ComponentLevel(t *testing.T) {
	l := Logger("test/quiet")

	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	l.Debug("warm up") // 确保子系统 Handler 已创建
	SetComponentLevel("test/quiet", LevelError)
	l.Warn("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	l.With("x", 1).Error("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "x=1")
}
