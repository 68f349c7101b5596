// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"campus_msg_server/internal/dao/mysql/repository"
	myredis "campus_msg_server/internal/dao/redis"
	"campus_msg_server/internal/infrastructure/sms"
	"campus_msg_server/internal/service/conversation"
	"campus_msg_server/internal/service/directed"
	"campus_msg_server/internal/service/feed"
	"campus_msg_server/internal/service/live"
	"campus_msg_server/internal/service/notice"
	"campus_msg_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	User            UserService            // 用户 Service
	Conversation    ConversationService    // 会话 Service
	DirectedMessage DirectedMessageService // 定向消息 Service
	Notice          NoticeService          // 通知 Service
	Feed            FeedService            // 内容更新与综合视图 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合、缓存、事件发布器和短信服务
//  2. 创建各个 Service 实例并注入依赖
//  3. 综合视图 Service 复用定向消息/通知 Service 的查询路径
func NewServices(
	repos *repository.Repositories,
	cacheService myredis.AsyncCacheService,
	publisher live.Publisher,
	smsService sms.SmsService,
) *Services {
	userSvc := user.NewUserService(repos)
	conversationSvc := conversation.NewConversationService(repos, cacheService, publisher)
	directedSvc := directed.NewDirectedMessageService(repos, publisher)
	noticeSvc := notice.NewNoticeService(repos, publisher, smsService)
	feedSvc := feed.NewFeedService(repos, publisher, directedSvc, noticeSvc)

	return &Services{
		User:            userSvc,
		Conversation:    conversationSvc,
		DirectedMessage: directedSvc,
		Notice:          noticeSvc,
		Feed:            feedSvc,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Conversation.SendMessage() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository 和缓存初始化之后
func InitServices(
	repos *repository.Repositories,
	cacheService myredis.AsyncCacheService,
	publisher live.Publisher,
	smsService sms.SmsService,
) {
	Svc = NewServices(repos, cacheService, publisher, smsService)
}
