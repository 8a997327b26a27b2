package runtime

import (
	"fmt"
	"time"
)

// ============================================================================
//                              状态定义
// ============================================================================

// State 运行时状态
type State int

const (
	// StateCreated 已创建，尚未加载
	StateCreated State = iota

	// StateLoaded 已加载
	StateLoaded

	// StateRunning 运行中
	StateRunning

	// StateSuspended 已挂起
	StateSuspended

	// StateTerminated 已终止
	StateTerminated
)

// String 返回状态字符串表示
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateLoaded:
		return "loaded"
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// ============================================================================
//                              事件参数
// ============================================================================

// StateChangedArgs 状态变更事件参数
type StateChangedArgs struct {
	From State
	To   State
}

// FrameArgs 帧事件参数
type FrameArgs struct {
	// Frame 帧号，从 1 开始
	Frame uint64

	// Time 帧开始时间
	Time time.Time
}
