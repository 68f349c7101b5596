// Package model 定义数据库实体模型
// 本文件定义用户信息模型，管理员/教师/学生共用一张表
package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo 用户信息模型
// 对应数据库 user_info 表
// 消息子系统需要身份表来解析会话对端名称、"任意管理员"收件人、
// 在线状态展示名以及短信提醒的手机号
type UserInfo struct {
	gorm.Model // 内嵌 GORM 模型，包含 ID、CreatedAt、UpdatedAt、DeletedAt

	// Uuid 用户唯一标识
	// 格式：角色前缀 + 时间戳随机字符串，如 "A240104xxxx"（管理员）、
	// "T..."（教师）、"S..."（学生）
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:用户唯一id"`

	// Name 显示名称
	Name string `gorm:"column:name;type:varchar(30);not null;comment:姓名"`

	// Telephone 手机号码
	// 登录凭证，同时是通知短信的发送目标
	Telephone string `gorm:"column:telephone;index;not null;type:char(11);comment:电话"`

	// Email 邮箱地址（可选）
	Email string `gorm:"column:email;type:char(30);comment:邮箱"`

	// Avatar 用户头像 URL
	Avatar string `gorm:"column:avatar;type:char(255);default:/static/avatars/default.png;not null;comment:头像"`

	// UserType 用户角色
	// 0=管理员, 1=教师, 2=学生
	// 参见 pkg/enum/user/user_type_enum
	UserType int8 `gorm:"column:user_type;index;not null;comment:角色，0.管理员，1.教师，2.学生"`

	// Password 密码（已哈希）
	// 存储 bcrypt 哈希后的密码，不存储明文
	Password string `gorm:"column:password;type:varchar(100);not null;comment:密码"`

	// Status 账号状态
	// 0=正常, 1=禁用
	Status int8 `gorm:"column:status;index;not null;comment:状态，0.正常，1.禁用"`

	// RawPassword 明文密码（不存入数据库）
	// 接收前端传来的明文，在 BeforeSave 中加密
	RawPassword string `gorm:"-" json:"-"`
}

// TableName 指定表名
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave GORM Hook：创建和更新前将 RawPassword 加密存入 Password
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword 校验登录密码
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
