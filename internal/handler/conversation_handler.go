// Package handler 提供 HTTP 请求处理器
// 本文件处理管理员私聊会话相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/service"
	"campus_msg_server/pkg/errorx"
)

// ConversationHandler 会话请求处理器
type ConversationHandler struct {
	conversationSvc service.ConversationService
}

// NewConversationHandler 创建会话处理器实例
func NewConversationHandler(conversationSvc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationSvc: conversationSvc}
}

// OpenConversation 打开（查找或创建）会话
// POST /conversation/open
// 参与者顺序无关，双方打开的是同一条会话
func (h *ConversationHandler) OpenConversation(c *gin.Context) {
	var req request.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.conversationSvc.OpenConversation(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetConversationList 获取会话列表
// GET /conversation/list?owner_id=Axxx
func (h *ConversationHandler) GetConversationList(c *gin.Context) {
	ownerId := c.Query("owner_id")
	if ownerId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.conversationSvc.GetConversationList(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMessageList 获取会话内消息
// GET /conversation/:conversation_id/messages
func (h *ConversationHandler) GetMessageList(c *gin.Context) {
	conversationId := c.Param("conversation_id")
	if conversationId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.conversationSvc.GetMessageList(conversationId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendMessage 在会话内发送消息
// POST /conversation/message
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.conversationSvc.SendMessage(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkConversationRead 标记会话已读
// POST /conversation/read
func (h *ConversationHandler) MarkConversationRead(c *gin.Context) {
	var req request.MarkConversationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.conversationSvc.MarkConversationRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
