// Package repository 提供 Repository 层聚合与构造
package repository

import (
	"gorm.io/gorm"
)

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
// 各字段为接口类型，测试中可替换为内存实现
type Repositories struct {
	db              *gorm.DB                  // GORM 数据库实例
	User            UserRepository            // 用户 Repository
	Conversation    ConversationRepository    // 会话 Repository
	AdminMessage    AdminMessageRepository    // 会话消息 Repository
	DirectedMessage DirectedMessageRepository // 定向消息 Repository
	Notice          NoticeRepository          // 学生通知 Repository
	ContentUpdate   ContentUpdateRepository   // 内容更新 Repository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:              db,
		User:            NewUserRepository(db),
		Conversation:    NewConversationRepository(db),
		AdminMessage:    NewAdminMessageRepository(db),
		DirectedMessage: NewDirectedMessageRepository(db),
		Notice:          NewNoticeRepository(db),
		ContentUpdate:   NewContentUpdateRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// fn 接收绑定到事务的 Repositories 实例，出错时整体回滚
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
