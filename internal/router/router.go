// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"campus_msg_server/internal/handler"
	"campus_msg_server/internal/infrastructure/middleware"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由管理器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
// 登录注册为公开接口，其余路由挂在 JWT 认证组下
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	// 公开接口 (无需认证)
	r.POST("/login", rt.handlers.User.Login)
	r.POST("/register", rt.handlers.User.Register)

	// WebSocket 握手自带 client_id，不走 Bearer Header
	rt.RegisterWebSocketRoutes(r)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuth())
	{
		rt.RegisterUserRoutes(authed)         // 用户路由
		rt.RegisterConversationRoutes(authed) // 会话路由
		rt.RegisterDirectedRoutes(authed)     // 定向消息路由
		rt.RegisterNoticeRoutes(authed)       // 通知路由
		rt.RegisterFeedRoutes(authed)         // 内容更新与综合视图路由
		rt.RegisterPresenceRoutes(authed)     // 在线状态路由
	}
}
