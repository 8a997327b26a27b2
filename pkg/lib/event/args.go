package event

// Empty 无数据事件参数
type Empty struct{}

// EmptyArgs 无数据事件共享使用的参数值
var EmptyArgs = Empty{}
