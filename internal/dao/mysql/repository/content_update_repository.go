package repository

import (
	"campus_msg_server/internal/model"

	"gorm.io/gorm"
)

type contentUpdateRepository struct {
	db *gorm.DB
}

// NewContentUpdateRepository 创建内容更新 Repository
func NewContentUpdateRepository(db *gorm.DB) ContentUpdateRepository {
	return &contentUpdateRepository{db: db}
}

// CreateBatch 为一批学生写入更新指针
func (r *contentUpdateRepository) CreateBatch(updates []model.ContentUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.Create(&updates).Error; err != nil {
		return wrapDBError(err, "批量创建内容更新")
	}
	return nil
}

// FindByStudentId 某学生的更新列表，最近发布在前
func (r *contentUpdateRepository) FindByStudentId(studentId string) ([]model.ContentUpdate, error) {
	var updates []model.ContentUpdate
	if err := r.db.Where("student_id = ?", studentId).
		Order("created_at DESC").Find(&updates).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询内容更新 student=%s", studentId)
	}
	return updates, nil
}

// MarkRead 学生查看更新指针
func (r *contentUpdateRepository) MarkRead(uuid int64, studentId string) error {
	if err := r.db.Model(&model.ContentUpdate{}).
		Where("uuid = ? AND student_id = ? AND is_read = ?", uuid, studentId, false).
		Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "标记内容更新已读 uuid=%d", uuid)
	}
	return nil
}

// CountUnread 某学生的未读更新数
func (r *contentUpdateRepository) CountUnread(studentId string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.ContentUpdate{}).
		Where("student_id = ? AND is_read = ?", studentId, false).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读内容更新 student=%s", studentId)
	}
	return count, nil
}
