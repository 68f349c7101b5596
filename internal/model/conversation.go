// Package model 定义数据库实体模型
// 本文件定义管理员私聊会话模型
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Conversation 会话模型
// 对应数据库 conversation 表
// 仅限管理员之间的私聊；参与者按字典序规范存储：
// ParticipantA 恒为较小的 uuid，ParticipantB 恒为较大的 uuid，
// 配合 (participant_a, participant_b) 唯一索引保证同一对用户至多一条记录，
// 无论由哪一方发起
type Conversation struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Uuid 会话唯一标识
	// 格式：C + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:会话uuid"`

	// ParticipantA 参与者之一，恒为字典序较小的用户 uuid
	ParticipantA string `gorm:"column:participant_a;uniqueIndex:idx_participant_pair;type:char(20);not null;comment:较小参与者uuid"`

	// ParticipantB 参与者之一，恒为字典序较大的用户 uuid
	ParticipantB string `gorm:"column:participant_b;uniqueIndex:idx_participant_pair;type:char(20);not null;comment:较大参与者uuid"`

	// LastMessage 最新消息内容
	// 冗余存储，用于会话列表显示摘要
	LastMessage string `gorm:"column:last_message;type:TEXT;comment:最新的消息"`

	// LastMessageAt 最后消息时间
	// 每次发消息时更新，用于会话列表排序
	LastMessageAt sql.NullTime `gorm:"column:last_message_at;type:datetime;comment:最近消息时间"`
}

// TableName 指定表名
func (Conversation) TableName() string {
	return "conversation"
}
