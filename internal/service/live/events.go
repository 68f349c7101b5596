// Package live 实现实时更新通道
// events.go
// 核心职责：定义表变更事件
// 事件只携带"哪张表的哪行变了"，不携带业务数据，
// 客户端收到后通过常规查询接口重新拉取，避免推送与查询两条路径产生分歧
package live

import (
	"encoding/json"

	"campus_msg_server/internal/dto/respond"
	"campus_msg_server/pkg/enum/event/event_action_enum"
)

// ChangeEvent 表变更事件
// Scope 为受影响用户的 uuid：只投递给订阅了该表且 uuid 匹配的连接；
// 为空时投递给所有订阅该表的连接（如"任意管理员"广播消息）
type ChangeEvent struct {
	Table  string `json:"table"`  // 变更的表名
	Action string `json:"action"` // INSERT / UPDATE，见 event_action_enum
	RowId  string `json:"row_id"` // 变更行的业务 uuid
	Scope  string `json:"scope"`  // 受影响用户 uuid，空表示按表广播
}

// 可订阅的表名，与 model 的 TableName 保持一致
const (
	TableConversation    = "conversation"
	TableAdminMessage    = "admin_message"
	TableDirectedMessage = "directed_message"
	TableNotice          = "notice"
	TableContentUpdate   = "content_update"
)

// NewInsertEvent 构造新增行事件
func NewInsertEvent(table, rowId, scope string) ChangeEvent {
	return ChangeEvent{
		Table:  table,
		Action: event_action_enum.Insert,
		RowId:  rowId,
		Scope:  scope,
	}
}

// NewUpdateEvent 构造更新行事件
func NewUpdateEvent(table, rowId, scope string) ChangeEvent {
	return ChangeEvent{
		Table:  table,
		Action: event_action_enum.Update,
		RowId:  rowId,
		Scope:  scope,
	}
}

// Marshal 序列化为下发给客户端的 JSON
func (e ChangeEvent) Marshal() []byte {
	data, _ := json.Marshal(e)
	return data
}

// TablePresence 在线状态的伪表名
// 订阅它的连接会收到全量在线快照推送
const TablePresence = "presence"

// PushEnvelope 下发给 WebSocket 客户端的统一信封
// Kind 为 "change" 时携带变更事件，为 "presence" 时携带在线快照
type PushEnvelope struct {
	Kind     string                   `json:"kind"`
	Event    *ChangeEvent             `json:"event,omitempty"`
	Presence *respond.PresenceRespond `json:"presence,omitempty"`
}

// NewChangePush 构造变更事件推送
func NewChangePush(event ChangeEvent) []byte {
	data, _ := json.Marshal(PushEnvelope{Kind: "change", Event: &event})
	return data
}

// NewPresencePush 构造在线快照推送
func NewPresencePush(snapshot respond.PresenceRespond) []byte {
	data, _ := json.Marshal(PushEnvelope{Kind: "presence", Presence: &snapshot})
	return data
}

// Publisher 事件发布接口
// Service 层只依赖该接口，由 ChannelBroker 或 KafkaBroker 实现
type Publisher interface {
	// Publish 发布一条变更事件
	// 发布是尽力而为的：事件丢失只影响推送及时性，不影响数据正确性
	Publish(event ChangeEvent) error
}

// NopPublisher 空实现，测试或未启用实时通道时使用
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(ChangeEvent) error { return nil }
