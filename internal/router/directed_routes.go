// Package router 提供 HTTP 路由注册
// 本文件定义定向消息相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterDirectedRoutes 注册定向消息相关路由（需要认证）
func (rt *Router) RegisterDirectedRoutes(rg *gin.RouterGroup) {
	directedGroup := rg.Group("/directed")
	{
		directedGroup.POST("/send", rt.handlers.DirectedMessage.Send)            // 发送定向消息
		directedGroup.POST("/reply", rt.handlers.DirectedMessage.Reply)          // 回复定向消息
		directedGroup.GET("/inbox", rt.handlers.DirectedMessage.Inbox)           // 收件箱列表
		directedGroup.POST("/read", rt.handlers.DirectedMessage.MarkRead)        // 单条标记已读
		directedGroup.POST("/read_all", rt.handlers.DirectedMessage.MarkAllRead) // 全部标记已读
		directedGroup.GET("/badge", rt.handlers.DirectedMessage.Badge)           // 未读角标
	}
}
