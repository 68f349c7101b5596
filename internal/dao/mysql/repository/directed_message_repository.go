package repository

import (
	"errors"
	"time"

	"campus_msg_server/internal/model"
	"campus_msg_server/pkg/enum/user/user_type_enum"

	"gorm.io/gorm"
)

type directedMessageRepository struct {
	db *gorm.DB
}

// NewDirectedMessageRepository 创建定向消息 Repository
func NewDirectedMessageRepository(db *gorm.DB) DirectedMessageRepository {
	return &directedMessageRepository{db: db}
}

// Create 追加一条定向消息
func (r *directedMessageRepository) Create(message *model.DirectedMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建定向消息")
	}
	return nil
}

// FindByUuid 按雪花 ID 查找
func (r *directedMessageRepository) FindByUuid(uuid int64) (*model.DirectedMessage, error) {
	var message model.DirectedMessage
	if err := r.db.Where("uuid = ?", uuid).First(&message).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询定向消息 uuid=%d", uuid)
	}
	return &message, nil
}

// FindInbox 收件箱列表，最近消息在前
// includeBroadcast 并入"任意管理员"广播（receive_id IS NULL）
func (r *directedMessageRepository) FindInbox(recipientType int8, recipientId string, includeBroadcast bool) ([]model.DirectedMessage, error) {
	var messages []model.DirectedMessage
	query := r.db.Where("recipient_type = ? AND receive_id = ?", recipientType, recipientId)
	if includeBroadcast {
		query = r.db.Where(
			"(recipient_type = ? AND receive_id = ?) OR (recipient_type = ? AND receive_id IS NULL)",
			recipientType, recipientId, user_type_enum.Admin,
		)
	}
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询收件箱 recipient=%s", recipientId)
	}
	return messages, nil
}

// CountUnreadDirect 统计定向到具体收件人的未读数
func (r *directedMessageRepository) CountUnreadDirect(recipientType int8, recipientId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.DirectedMessage{}).
		Where("recipient_type = ? AND receive_id = ? AND is_read = ?", recipientType, recipientId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读定向消息 recipient=%s", recipientId)
	}
	return count, nil
}

// CountUnreadBroadcast 统计 reader 尚无已读回执的广播消息数
// 广播的已读状态按人记录在回执表，同一条广播各管理员独立计数
func (r *directedMessageRepository) CountUnreadBroadcast(readerId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.DirectedMessage{}).
		Where("recipient_type = ? AND receive_id IS NULL", user_type_enum.Admin).
		Where("NOT EXISTS (SELECT 1 FROM directed_message_read r WHERE r.message_uuid = directed_message.uuid AND r.reader_id = ? AND r.deleted_at IS NULL)", readerId).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读广播 reader=%s", readerId)
	}
	return count, nil
}

// MarkRead 单条置已读
// WHERE is_read=0 保证 read_at 只在首次阅读时写入一次
func (r *directedMessageRepository) MarkRead(uuid int64, readAt time.Time) error {
	if err := r.db.Model(&model.DirectedMessage{}).
		Where("uuid = ? AND is_read = ?", uuid, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": readAt,
		}).Error; err != nil {
		return wrapDBErrorf(err, "标记定向消息已读 uuid=%d", uuid)
	}
	return nil
}

// MarkAllReadDirect 快照式批量置已读
// 只影响执行时刻已存在的未读行，执行期间新到的消息保持未读
func (r *directedMessageRepository) MarkAllReadDirect(recipientType int8, recipientId string, readAt time.Time) error {
	if err := r.db.Model(&model.DirectedMessage{}).
		Where("recipient_type = ? AND receive_id = ? AND is_read = ?", recipientType, recipientId, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": readAt,
		}).Error; err != nil {
		return wrapDBErrorf(err, "全部标记已读 recipient=%s", recipientId)
	}
	return nil
}

// FindUnreadBroadcastUuids 查找 reader 未读的广播消息 ID 集合
func (r *directedMessageRepository) FindUnreadBroadcastUuids(readerId string) ([]int64, error) {
	var uuids []int64
	if err := r.db.Model(&model.DirectedMessage{}).
		Where("recipient_type = ? AND receive_id IS NULL", user_type_enum.Admin).
		Where("NOT EXISTS (SELECT 1 FROM directed_message_read r WHERE r.message_uuid = directed_message.uuid AND r.reader_id = ? AND r.deleted_at IS NULL)", readerId).
		Pluck("uuid", &uuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询未读广播 reader=%s", readerId)
	}
	return uuids, nil
}

// FindReadBroadcastUuids 在给定 ID 集合中筛出 reader 已读的广播
func (r *directedMessageRepository) FindReadBroadcastUuids(readerId string, uuids []int64) ([]int64, error) {
	var read []int64
	if len(uuids) == 0 {
		return read, nil
	}
	if err := r.db.Model(&model.DirectedMessageRead{}).
		Where("reader_id = ? AND message_uuid IN ?", readerId, uuids).
		Pluck("message_uuid", &read).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询广播回执 reader=%s", readerId)
	}
	return read, nil
}

// CreateReadReceipt 写入广播已读回执
// (message_uuid, reader_id) 唯一，重复写入视为成功（幂等）
func (r *directedMessageRepository) CreateReadReceipt(receipt *model.DirectedMessageRead) error {
	if err := r.db.Create(receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return wrapDBError(err, "创建已读回执")
	}
	return nil
}
