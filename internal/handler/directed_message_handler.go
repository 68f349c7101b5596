// Package handler 提供 HTTP 请求处理器
// 本文件处理定向消息（跨角色站内信）相关的 API 请求
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/service"
	"campus_msg_server/pkg/errorx"
)

// DirectedMessageHandler 定向消息请求处理器
type DirectedMessageHandler struct {
	directedSvc service.DirectedMessageService
}

// NewDirectedMessageHandler 创建定向消息处理器实例
func NewDirectedMessageHandler(directedSvc service.DirectedMessageService) *DirectedMessageHandler {
	return &DirectedMessageHandler{directedSvc: directedSvc}
}

// Send 发送定向消息
// POST /directed/send
// recipient_kind 为 any_admin 时广播给任意管理员
func (h *DirectedMessageHandler) Send(c *gin.Context) {
	var req request.SendDirectedMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	uuid, err := h.directedSvc.Send(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"uuid": uuid})
}

// Reply 回复定向消息
// POST /directed/reply
// 主题由原消息派生："Re: 原主题" 或 "Re: No Subject"
func (h *DirectedMessageHandler) Reply(c *gin.Context) {
	var req request.ReplyDirectedMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	uuid, err := h.directedSvc.Reply(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"uuid": uuid})
}

// Inbox 收件箱列表
// GET /directed/inbox?recipient_type=0&recipient_id=Axxx
func (h *DirectedMessageHandler) Inbox(c *gin.Context) {
	recipientType, err := strconv.ParseInt(c.Query("recipient_type"), 10, 8)
	if err != nil {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	recipientId := c.Query("recipient_id")
	if recipientId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.directedSvc.Inbox(int8(recipientType), recipientId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 单条标记已读
// POST /directed/read
func (h *DirectedMessageHandler) MarkRead(c *gin.Context) {
	var req request.MarkDirectedReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.directedSvc.MarkRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// MarkAllRead 全部标记已读（快照语义）
// POST /directed/read_all
func (h *DirectedMessageHandler) MarkAllRead(c *gin.Context) {
	var req request.MarkAllReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.directedSvc.MarkAllRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Badge 未读角标
// GET /directed/badge?reader_type=0&reader_id=Axxx
func (h *DirectedMessageHandler) Badge(c *gin.Context) {
	readerType, err := strconv.ParseInt(c.Query("reader_type"), 10, 8)
	if err != nil {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	readerId := c.Query("reader_id")
	if readerId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.directedSvc.Badge(int8(readerType), readerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
