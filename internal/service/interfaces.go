// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/dto/respond"
)

// UserService 用户业务接口
// 处理注册、登录和角色查询
type UserService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// GetUserInfo 获取单个用户信息
	GetUserInfo(uuid string) (*respond.UserInfoRespond, error)
	// GetAdminList 获取全部管理员（会话目标选择器使用）
	GetAdminList() ([]respond.UserListRespond, error)
	// GetUserList 按角色获取用户列表
	GetUserList(userType int8) ([]respond.UserListRespond, error)
}

// ConversationService 管理员私聊会话业务接口
// 会话按参与者对唯一，参与者顺序无关
type ConversationService interface {
	// OpenConversation 查找或创建两人之间的会话
	// 任意一方先发起，后续双方打开的都是同一条会话
	OpenConversation(req request.OpenConversationRequest) (*respond.ConversationRespond, error)
	// GetConversationList 获取某用户的会话列表，按最近消息时间倒序
	GetConversationList(ownerId string) ([]respond.ConversationListRespond, error)
	// GetMessageList 获取会话内消息，创建时间升序
	GetMessageList(conversationId string) ([]respond.MessageListRespond, error)
	// SendMessage 在会话内发送消息，拒绝空白内容
	SendMessage(req request.SendMessageRequest) (*respond.MessageListRespond, error)
	// MarkConversationRead 将对方发来的未读消息全部置已读，幂等
	MarkConversationRead(req request.MarkConversationReadRequest) error
}

// DirectedMessageService 定向消息业务接口
// 跨角色站内信，支持定向到人和"任意管理员"广播
type DirectedMessageService interface {
	// Send 发送定向消息，返回消息 uuid（字符串形式）
	Send(req request.SendDirectedMessageRequest) (string, error)
	// Reply 回复定向消息，主题由原消息派生
	Reply(req request.ReplyDirectedMessageRequest) (string, error)
	// Inbox 收件箱列表，倒序；管理员视角并入广播消息
	Inbox(recipientType int8, recipientId string) ([]respond.InboxRespond, error)
	// MarkRead 单条标记已读，幂等
	MarkRead(req request.MarkDirectedReadRequest) error
	// MarkAllRead 快照式全部标记已读
	MarkAllRead(req request.MarkAllReadRequest) error
	// Badge 未读角标，计数精确，显示超过上限截断为 "9+"
	Badge(readerType int8, readerId string) (*respond.BadgeRespond, error)
}

// NoticeService 学生通知业务接口
// 教职工向学生单向下发，警告/考勤类触发短信提醒
type NoticeService interface {
	// PostNotice 发布通知，返回通知 uuid（字符串形式）
	PostNotice(req request.PostNoticeRequest) (string, error)
	// GetNoticeList 某学生的通知列表，倒序
	GetNoticeList(studentId string) ([]respond.NoticeListRespond, error)
	// MarkNoticeRead 学生查看通知，幂等
	MarkNoticeRead(req request.MarkNoticeReadRequest) error
	// Badge 某学生的未读通知角标
	Badge(studentId string) (*respond.BadgeRespond, error)
}

// FeedService 学生内容更新与综合视图业务接口
type FeedService interface {
	// PublishUpdate 为一批学生发布内容更新指针
	PublishUpdate(req request.PublishContentUpdateRequest) error
	// GetUpdateList 某学生的更新列表，倒序
	GetUpdateList(studentId string) ([]respond.ContentUpdateRespond, error)
	// MarkUpdateRead 学生查看更新指针，幂等
	MarkUpdateRead(req request.MarkUpdateReadRequest) error
	// Badge 某学生的未读更新角标
	Badge(studentId string) (*respond.BadgeRespond, error)
	// GetStudentFeed 学生综合视图快照
	// 轮询和事件触发的重新拉取都走这里，保证两种模式可观测结果一致
	GetStudentFeed(studentId string) (*respond.StudentFeedRespond, error)
}
