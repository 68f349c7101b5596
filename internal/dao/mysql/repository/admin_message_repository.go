package repository

import (
	"campus_msg_server/internal/model"

	"gorm.io/gorm"
)

type adminMessageRepository struct {
	db *gorm.DB
}

// NewAdminMessageRepository 创建会话消息 Repository
func NewAdminMessageRepository(db *gorm.DB) AdminMessageRepository {
	return &adminMessageRepository{db: db}
}

// FindByConversationId 按会话查找消息，创建时间升序
func (r *adminMessageRepository) FindByConversationId(conversationId string) ([]model.AdminMessage, error) {
	var messages []model.AdminMessage
	if err := r.db.Where("conversation_id = ?", conversationId).
		Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话消息 conversation_id=%s", conversationId)
	}
	return messages, nil
}

// Create 追加一条消息
func (r *adminMessageRepository) Create(message *model.AdminMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建会话消息")
	}
	return nil
}

// CountUnread 统计会话中某阅读者的未读数
// 按 viewer 实时统计，不做反规范化存储，避免多端同时查看时的状态陈旧
func (r *adminMessageRepository) CountUnread(conversationId, readerId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.AdminMessage{}).
		Where("conversation_id = ? AND send_id <> ? AND is_read = ?", conversationId, readerId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读消息 conversation_id=%s", conversationId)
	}
	return count, nil
}

// MarkConversationRead 将会话中非 reader 发送的未读消息置已读
// 单条 UPDATE 语句，幂等：符合条件的行已清空时再次调用是空操作
func (r *adminMessageRepository) MarkConversationRead(conversationId, readerId string) error {
	if err := r.db.Model(&model.AdminMessage{}).
		Where("conversation_id = ? AND send_id <> ? AND is_read = ?", conversationId, readerId, false).
		Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "标记会话已读 conversation_id=%s", conversationId)
	}
	return nil
}
