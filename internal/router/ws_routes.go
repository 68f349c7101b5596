// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 实时通道相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册实时通道路由
// 握手通过 client_id 参数识别连接，不经过 JWT 中间件
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	r.GET("/ws", rt.handlers.Ws.Connect)        // 建立实时连接
	r.POST("/ws/logout", rt.handlers.Ws.Logout) // 显式断开连接
}
