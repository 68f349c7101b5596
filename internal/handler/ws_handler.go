// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 实时通道的接入与登出
package handler

import (
	"github.com/gin-gonic/gin"

	"campus_msg_server/internal/service/live"
	"campus_msg_server/pkg/errorx"
)

// WsHandler 实时通道请求处理器
type WsHandler struct{}

// NewWsHandler 创建实时通道处理器实例
func NewWsHandler() *WsHandler {
	return &WsHandler{}
}

// Connect 建立 WebSocket 连接
// GET /ws?client_id=Axxx
// 连接建立后客户端通过 subscribe/track/untrack 指令管理订阅和在线状态
func (h *WsHandler) Connect(c *gin.Context) {
	clientId := c.Query("client_id")
	if clientId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	live.NewClientInit(c, clientId, live.GlobalBroker)
}

// Logout 显式断开实时连接
// POST /ws/logout?client_id=Axxx
// 注销处理后该连接不再收到任何推送
func (h *WsHandler) Logout(c *gin.Context) {
	clientId := c.Query("client_id")
	if clientId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	live.ClientLogout(clientId, live.GlobalBroker)
	HandleSuccess(c, nil)
}
