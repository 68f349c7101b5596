// Package repository 定义数据访问层接口和聚合结构
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"time"

	"campus_msg_server/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByTelephone 根据手机号查找用户
	FindByTelephone(telephone string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// FindByType 按角色查找用户（管理员选择器、"任意管理员"解析）
	FindByType(userType int8) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
}

// ConversationRepository 会话数据访问接口
type ConversationRepository interface {
	// FindByUuid 根据会话 UUID 查找
	FindByUuid(uuid string) (*model.Conversation, error)
	// FindByParticipantPair 按规范化参与者对查找
	// a、b 必须已按字典序排好（a < b）
	FindByParticipantPair(a, b string) (*model.Conversation, error)
	// FindByParticipant 查找某用户参与的全部会话，按最近消息时间倒序
	FindByParticipant(userId string) ([]model.Conversation, error)
	// Create 创建会话
	// 参与者对撞唯一索引时返回 CodeConflict，调用方重读已有行
	Create(conversation *model.Conversation) error
	// UpdateLastMessage 发消息后刷新会话摘要和时间
	UpdateLastMessage(uuid string, preview string, at time.Time) error
}

// AdminMessageRepository 会话内消息数据访问接口
type AdminMessageRepository interface {
	// FindByConversationId 按会话查找消息，创建时间升序（聊天窗展示序）
	FindByConversationId(conversationId string) ([]model.AdminMessage, error)
	// Create 追加一条消息
	Create(message *model.AdminMessage) error
	// CountUnread 统计会话中某阅读者的未读数（sender ≠ reader 且未读）
	CountUnread(conversationId, readerId string) (int64, error)
	// MarkConversationRead 将会话中非 reader 发送的未读消息单条 UPDATE 置已读
	// 可重复调用，已全读时为空操作
	MarkConversationRead(conversationId, readerId string) error
}

// DirectedMessageRepository 定向消息数据访问接口
type DirectedMessageRepository interface {
	// Create 追加一条定向消息
	Create(message *model.DirectedMessage) error
	// FindByUuid 按雪花 ID 查找
	FindByUuid(uuid int64) (*model.DirectedMessage, error)
	// FindInbox 收件箱列表，创建时间倒序
	// includeBroadcast 为 true 时并入 receive_id 为空的广播（仅管理员视角）
	FindInbox(recipientType int8, recipientId string, includeBroadcast bool) ([]model.DirectedMessage, error)
	// CountUnreadDirect 统计定向到具体收件人的未读数
	CountUnreadDirect(recipientType int8, recipientId string) (int64, error)
	// CountUnreadBroadcast 统计 reader 尚无已读回执的广播消息数
	CountUnreadBroadcast(readerId string) (int64, error)
	// MarkRead 单条置已读并写入 read_at（仅首次生效）
	MarkRead(uuid int64, readAt time.Time) error
	// MarkAllReadDirect 快照式批量置已读
	MarkAllReadDirect(recipientType int8, recipientId string, readAt time.Time) error
	// FindUnreadBroadcastUuids 查找 reader 未读的广播消息 ID 集合
	FindUnreadBroadcastUuids(readerId string) ([]int64, error)
	// FindReadBroadcastUuids 在给定 ID 集合中筛出 reader 已读的广播
	FindReadBroadcastUuids(readerId string, uuids []int64) ([]int64, error)
	// CreateReadReceipt 写入广播已读回执，重复写入视为成功
	CreateReadReceipt(receipt *model.DirectedMessageRead) error
}

// NoticeRepository 学生通知数据访问接口
type NoticeRepository interface {
	// Create 发布通知
	Create(notice *model.Notice) error
	// FindByUuid 按雪花 ID 查找
	FindByUuid(uuid int64) (*model.Notice, error)
	// FindByStudentId 某学生的通知列表，创建时间倒序
	FindByStudentId(studentId string) ([]model.Notice, error)
	// MarkRead 学生查看通知，首次置已读并写 read_at
	MarkRead(uuid int64, studentId string, readAt time.Time) error
	// CountUnread 某学生的未读通知数
	CountUnread(studentId string) (int64, error)
}

// ContentUpdateRepository 内容更新指针数据访问接口
type ContentUpdateRepository interface {
	// CreateBatch 为一批学生写入更新指针
	CreateBatch(updates []model.ContentUpdate) error
	// FindByStudentId 某学生的更新列表，创建时间倒序
	FindByStudentId(studentId string) ([]model.ContentUpdate, error)
	// MarkRead 学生查看更新指针
	MarkRead(uuid int64, studentId string) error
	// CountUnread 某学生的未读更新数
	CountUnread(studentId string) (int64, error)
}
