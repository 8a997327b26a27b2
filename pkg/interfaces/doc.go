// Package interfaces 定义 go-evchan 的公共接口
//
// 本包只包含跨包共享的接口定义，不包含实现：
//   - event.go          - DispatchObserver 事件分发观测接口
//
// 实现位于：
//   - internal/core/metrics  - Prometheus Collector
//   - tests/mocks            - MockDispatchObserver
package interfaces
