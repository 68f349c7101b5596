// Package router 提供 HTTP 路由注册
// 本文件定义管理员私聊会话相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterConversationRoutes 注册会话相关路由（需要认证）
func (rt *Router) RegisterConversationRoutes(rg *gin.RouterGroup) {
	conversationGroup := rg.Group("/conversation")
	{
		conversationGroup.POST("/open", rt.handlers.Conversation.OpenConversation)                   // 打开/创建会话
		conversationGroup.GET("/list", rt.handlers.Conversation.GetConversationList)                 // 获取会话列表
		conversationGroup.GET("/:conversation_id/messages", rt.handlers.Conversation.GetMessageList) // 获取会话消息
		conversationGroup.POST("/message", rt.handlers.Conversation.SendMessage)                     // 发送消息
		conversationGroup.POST("/read", rt.handlers.Conversation.MarkConversationRead)               // 标记会话已读
	}
}
