// Package model 定义数据库实体模型
// 本文件定义会话内消息模型（管理员私聊）
package model

import (
	"gorm.io/gorm"
)

// AdminMessage 会话消息模型
// 对应数据库 admin_message 表
// 只追加，不支持编辑和删除；已读状态只允许 false→true 单向流转
type AdminMessage struct {
	gorm.Model

	// Uuid 消息唯一标识，雪花算法生成
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// ConversationId 所属会话 UUID
	ConversationId string `gorm:"column:conversation_id;index;type:char(20);not null;comment:会话uuid"`

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// Content 消息文本内容
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// IsRead 已读标记
	// 未读计数按 viewer 实时统计：sender ≠ viewer 且 is_read=false
	IsRead bool `gorm:"column:is_read;not null;default:false;comment:是否已读"`
}

// TableName 指定表名
func (AdminMessage) TableName() string {
	return "admin_message"
}
