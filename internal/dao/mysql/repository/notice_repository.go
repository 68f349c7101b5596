package repository

import (
	"time"

	"campus_msg_server/internal/model"

	"gorm.io/gorm"
)

type noticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository 创建学生通知 Repository
func NewNoticeRepository(db *gorm.DB) NoticeRepository {
	return &noticeRepository{db: db}
}

// Create 发布通知
func (r *noticeRepository) Create(notice *model.Notice) error {
	if err := r.db.Create(notice).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

// FindByUuid 按雪花 ID 查找
func (r *noticeRepository) FindByUuid(uuid int64) (*model.Notice, error) {
	var notice model.Notice
	if err := r.db.Where("uuid = ?", uuid).First(&notice).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 uuid=%d", uuid)
	}
	return &notice, nil
}

// FindByStudentId 某学生的通知列表，最近发布在前
func (r *noticeRepository) FindByStudentId(studentId string) ([]model.Notice, error) {
	var notices []model.Notice
	if err := r.db.Where("student_id = ?", studentId).
		Order("created_at DESC").Find(&notices).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询学生通知 student=%s", studentId)
	}
	return notices, nil
}

// MarkRead 学生查看通知
// WHERE is_read=0 保证 read_at 只在首次阅读时写入；student_id 条件防止越权
func (r *noticeRepository) MarkRead(uuid int64, studentId string, readAt time.Time) error {
	if err := r.db.Model(&model.Notice{}).
		Where("uuid = ? AND student_id = ? AND is_read = ?", uuid, studentId, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": readAt,
		}).Error; err != nil {
		return wrapDBErrorf(err, "标记通知已读 uuid=%d", uuid)
	}
	return nil
}

// CountUnread 某学生的未读通知数
func (r *noticeRepository) CountUnread(studentId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Notice{}).
		Where("student_id = ? AND is_read = ?", studentId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读通知 student=%s", studentId)
	}
	return count, nil
}
