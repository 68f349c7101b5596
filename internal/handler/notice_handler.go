// Package handler 提供 HTTP 请求处理器
// 本文件处理学生通知相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/service"
	"campus_msg_server/pkg/errorx"
)

// NoticeHandler 学生通知请求处理器
type NoticeHandler struct {
	noticeSvc service.NoticeService
}

// NewNoticeHandler 创建通知处理器实例
func NewNoticeHandler(noticeSvc service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeSvc: noticeSvc}
}

// PostNotice 发布通知
// POST /notice/post
// 警告/考勤类通知会触发短信提醒
func (h *NoticeHandler) PostNotice(c *gin.Context) {
	var req request.PostNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	uuid, err := h.noticeSvc.PostNotice(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"uuid": uuid})
}

// GetNoticeList 某学生的通知列表
// GET /notice/list?student_id=Sxxx
func (h *NoticeHandler) GetNoticeList(c *gin.Context) {
	studentId := c.Query("student_id")
	if studentId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.noticeSvc.GetNoticeList(studentId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkNoticeRead 学生查看通知
// POST /notice/read
func (h *NoticeHandler) MarkNoticeRead(c *gin.Context) {
	var req request.MarkNoticeReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.noticeSvc.MarkNoticeRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Badge 某学生的未读通知角标
// GET /notice/badge?student_id=Sxxx
func (h *NoticeHandler) Badge(c *gin.Context) {
	studentId := c.Query("student_id")
	if studentId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.noticeSvc.Badge(studentId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
