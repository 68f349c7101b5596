// Package router 提供 HTTP 路由注册
// 本文件定义学生通知相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterNoticeRoutes 注册通知相关路由（需要认证）
func (rt *Router) RegisterNoticeRoutes(rg *gin.RouterGroup) {
	noticeGroup := rg.Group("/notice")
	{
		noticeGroup.POST("/post", rt.handlers.Notice.PostNotice)     // 发布通知
		noticeGroup.GET("/list", rt.handlers.Notice.GetNoticeList)   // 通知列表
		noticeGroup.POST("/read", rt.handlers.Notice.MarkNoticeRead) // 标记通知已读
		noticeGroup.GET("/badge", rt.handlers.Notice.Badge)          // 未读角标
	}
}
