// Package router 提供 HTTP 路由注册
// 本文件定义用户相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由（需要认证）
func (rt *Router) RegisterUserRoutes(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.GET("/admins", rt.handlers.User.GetAdminList)    // 获取全部管理员
		userGroup.GET("/list", rt.handlers.User.GetUserList)       // 按角色获取用户列表
		userGroup.GET("/info/:uuid", rt.handlers.User.GetUserInfo) // 获取单个用户信息
	}
}
