package runtime

import "errors"

var (
	// ErrInvalidTransition 当前状态不允许该迁移
	ErrInvalidTransition = errors.New("runtime: invalid state transition")

	// ErrTerminated 运行时已终止
	ErrTerminated = errors.New("runtime: environment terminated")
)
