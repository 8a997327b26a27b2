package metrics

import (
	"time"

	pkgif "github.com/dep2p/go-evchan/pkg/interfaces"
)

// Reporter 在 DispatchObserver 之上提供统计查询
type Reporter interface {
	pkgif.DispatchObserver

	// Snapshot 返回单个事件的统计快照
	Snapshot(event string) (Stats, bool)

	// SnapshotAll 返回所有事件的统计快照
	SnapshotAll() map[string]Stats

	// Events 返回已观测到的事件名称
	Events() []string

	// Reset 重置所有统计
	Reset()

	// TrimIdle 清理空闲统计
	TrimIdle(since time.Time) int
}
