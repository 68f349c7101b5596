// Package event_action_enum 定义表变更事件的动作类型
// 事件以 JSON 形式下发给前端，因此使用字符串常量
package event_action_enum

const (
	Insert = "INSERT" // 新增行
	Update = "UPDATE" // 更新行
)
