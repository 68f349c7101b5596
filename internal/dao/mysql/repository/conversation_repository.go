package repository

import (
	"time"

	"campus_msg_server/internal/model"

	"gorm.io/gorm"
)

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository 创建会话 Repository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// FindByUuid 根据会话 UUID 查找
func (r *conversationRepository) FindByUuid(uuid string) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.Where("uuid = ?", uuid).First(&conversation).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 uuid=%s", uuid)
	}
	return &conversation, nil
}

// FindByParticipantPair 按规范化参与者对查找
// 调用方保证 a < b（字典序）
func (r *conversationRepository) FindByParticipantPair(a, b string) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.Where("participant_a = ? AND participant_b = ?", a, b).
		First(&conversation).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话 pair=(%s,%s)", a, b)
	}
	return &conversation, nil
}

// FindByParticipant 查找某用户参与的全部会话，最近消息在前
func (r *conversationRepository) FindByParticipant(userId string) ([]model.Conversation, error) {
	var conversations []model.Conversation
	if err := r.db.Where("participant_a = ? OR participant_b = ?", userId, userId).
		Order("last_message_at DESC").Find(&conversations).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户会话列表 user=%s", userId)
	}
	return conversations, nil
}

// Create 创建会话
// (participant_a, participant_b) 唯一索引撞键时经 wrapDBError 映射为 CodeConflict
func (r *conversationRepository) Create(conversation *model.Conversation) error {
	if err := r.db.Create(conversation).Error; err != nil {
		return wrapDBError(err, "创建会话")
	}
	return nil
}

// UpdateLastMessage 发消息后刷新会话摘要和时间
func (r *conversationRepository) UpdateLastMessage(uuid string, preview string, at time.Time) error {
	if err := r.db.Model(&model.Conversation{}).Where("uuid = ?", uuid).
		Updates(map[string]any{
			"last_message":    preview,
			"last_message_at": at,
		}).Error; err != nil {
		return wrapDBErrorf(err, "更新会话摘要 uuid=%s", uuid)
	}
	return nil
}
