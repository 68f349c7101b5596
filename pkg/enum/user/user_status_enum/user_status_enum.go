// Package user_status_enum 定义用户启用/禁用状态
package user_status_enum

const (
	NORMAL  int8 = iota // 正常
	DISABLE             // 禁用
)
