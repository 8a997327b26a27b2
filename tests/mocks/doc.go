// Package mocks 提供测试用的模拟实现
//
// 模拟对象手写实现，记录调用并允许通过 *Func 字段覆盖行为：
//
//	obs := mocks.NewMockDispatchObserver()
//	obs.OnSkipFunc = func(event string) { skipped <- event }
//
//	e := event.New[*Window, Size](event.WithObserver(obs))
//	...
//	raises, invokes, skips := obs.Counts()
package mocks
