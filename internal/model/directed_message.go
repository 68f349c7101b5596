// Package model 定义数据库实体模型
// 本文件定义定向消息模型（跨角色站内信）及其已读回执
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// DirectedMessage 定向消息模型
// 对应数据库 directed_message 表
// 不挂在会话下，而是携带显式的发送方/接收方角色；
// ReceiveId 为空且 RecipientType=管理员 表示"广播给任意管理员"
type DirectedMessage struct {
	gorm.Model

	// Uuid 消息唯一标识，雪花算法生成
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// SenderType 发送方角色
	// 0=管理员, 1=教师, 2=学生
	SenderType int8 `gorm:"column:sender_type;not null;comment:发送方角色"`

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// RecipientType 接收方角色
	RecipientType int8 `gorm:"column:recipient_type;index;not null;comment:接收方角色"`

	// ReceiveId 接收者 UUID
	// 为 NULL 且 RecipientType=管理员 时表示广播给任意管理员
	ReceiveId sql.NullString `gorm:"column:receive_id;index;type:char(20);comment:接收者uuid，空表示任意管理员"`

	// Subject 主题，可选
	Subject sql.NullString `gorm:"column:subject;type:varchar(100);comment:主题"`

	// Content 消息内容
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// IsRead 已读标记
	// 定向到具体收件人的消息使用本字段；广播消息的已读状态
	// 按 viewer 记录在 directed_message_read 回执表
	IsRead bool `gorm:"column:is_read;not null;default:false;comment:是否已读"`

	// ReadAt 首次阅读时间
	// 与 IsRead 同时置位，且至多设置一次
	ReadAt sql.NullTime `gorm:"column:read_at;type:datetime;comment:阅读时间"`
}

// TableName 指定表名
func (DirectedMessage) TableName() string {
	return "directed_message"
}

// DirectedMessageRead 广播消息的按人已读回执
// 对应数据库 directed_message_read 表
// "任意管理员"广播消息被多个管理员各自独立标记已读，
// 每人一行回执，(message_uuid, reader_id) 唯一
type DirectedMessageRead struct {
	gorm.Model

	// MessageUuid 消息雪花 ID
	MessageUuid int64 `gorm:"column:message_uuid;uniqueIndex:idx_msg_reader;type:bigint;not null;comment:消息雪花ID"`

	// ReaderId 阅读者 UUID
	ReaderId string `gorm:"column:reader_id;uniqueIndex:idx_msg_reader;type:char(20);not null;comment:阅读者uuid"`
}

// TableName 指定表名
func (DirectedMessageRead) TableName() string {
	return "directed_message_read"
}
