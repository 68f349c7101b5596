// Package model 定义数据库实体模型
// 本文件定义学生通知模型（教职工→学生单向）
package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Notice 学生通知模型
// 对应数据库 notice 表
// 单向下发，学生不能通过通知回复（回复走定向消息）
type Notice struct {
	gorm.Model

	// Uuid 通知唯一标识，雪花算法生成
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:通知雪花ID"`

	// StudentId 目标学生 UUID
	StudentId string `gorm:"column:student_id;index;type:char(20);not null;comment:学生uuid"`

	// PostedBy 发布者（管理员或教师）UUID
	PostedBy string `gorm:"column:posted_by;type:char(20);not null;comment:发布者uuid"`

	// NoticeType 通知类型
	// 0=普通, 1=警告, 2=考勤, 3=成就
	// 参见 pkg/enum/notice/notice_type_enum
	NoticeType int8 `gorm:"column:notice_type;not null;comment:类型，0.普通，1.警告，2.考勤，3.成就"`

	// Title 标题
	Title string `gorm:"column:title;type:varchar(100);not null;comment:标题"`

	// Content 正文
	Content string `gorm:"column:content;type:TEXT;not null;comment:正文"`

	// IsRead 已读标记
	IsRead bool `gorm:"column:is_read;not null;default:false;comment:是否已读"`

	// ReadAt 首次阅读时间，与 IsRead 同时置位且至多一次
	ReadAt sql.NullTime `gorm:"column:read_at;type:datetime;comment:阅读时间"`
}

// TableName 指定表名
func (Notice) TableName() string {
	return "notice"
}
