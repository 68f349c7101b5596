// Package handler 提供 HTTP 请求处理器
// 本文件处理在线状态查询的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"campus_msg_server/internal/service/live"
)

// PresenceHandler 在线状态请求处理器
// REST 观察入口：不持有 WebSocket 连接的页面也能查看在线列表
type PresenceHandler struct{}

// NewPresenceHandler 创建在线状态处理器实例
func NewPresenceHandler() *PresenceHandler {
	return &PresenceHandler{}
}

// GetOnlineUsers 获取当前在线用户的全量快照
// GET /presence/online
func (h *PresenceHandler) GetOnlineUsers(c *gin.Context) {
	snapshot := live.GlobalBroker.Presence().Snapshot()
	HandleSuccess(c, snapshot)
}
