// Package model 定义数据库实体模型
// 本文件定义学生内容更新指针模型
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// ContentUpdate 内容更新指针模型
// 对应数据库 content_update 表
// 教职工发布测验/课程资料/项目时为相关学生各写入一条轻量指针，
// 学生端据此显示"有新内容"角标
type ContentUpdate struct {
	gorm.Model

	// Uuid 更新指针唯一标识，雪花算法生成
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:更新雪花ID"`

	// StudentId 目标学生 UUID
	StudentId string `gorm:"column:student_id;index;type:char(20);not null;comment:学生uuid"`

	// UpdateType 更新类型
	// 0=测验, 1=LMS, 2=CA项目
	// 参见 pkg/enum/content/update_type_enum
	UpdateType int8 `gorm:"column:update_type;not null;comment:类型，0.测验，1.LMS，2.CA项目"`

	// Title 标题
	Title string `gorm:"column:title;type:varchar(100);not null;comment:标题"`

	// ReferenceId 指向的内容 ID，可选
	ReferenceId sql.NullString `gorm:"column:reference_id;type:char(20);comment:内容引用id"`

	// IsRead 已读标记
	IsRead bool `gorm:"column:is_read;not null;default:false;comment:是否已读"`
}

// TableName 指定表名
func (ContentUpdate) TableName() string {
	return "content_update"
}
