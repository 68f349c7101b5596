// Package router 提供 HTTP 路由注册
// 本文件定义学生内容更新与综合视图相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterFeedRoutes 注册内容更新相关路由（需要认证）
func (rt *Router) RegisterFeedRoutes(rg *gin.RouterGroup) {
	feedGroup := rg.Group("/feed")
	{
		feedGroup.POST("/publish", rt.handlers.ContentUpdate.PublishUpdate)  // 发布内容更新
		feedGroup.GET("/updates", rt.handlers.ContentUpdate.GetUpdateList)   // 更新列表
		feedGroup.POST("/read", rt.handlers.ContentUpdate.MarkUpdateRead)    // 标记更新已读
		feedGroup.GET("/badge", rt.handlers.ContentUpdate.Badge)             // 未读角标
		feedGroup.GET("/snapshot", rt.handlers.ContentUpdate.GetStudentFeed) // 学生综合视图快照（轮询入口）
	}
}
