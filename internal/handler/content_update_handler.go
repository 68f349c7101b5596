// Package handler 提供 HTTP 请求处理器
// 本文件处理学生内容更新与综合视图相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/service"
	"campus_msg_server/pkg/errorx"
)

// ContentUpdateHandler 内容更新请求处理器
type ContentUpdateHandler struct {
	feedSvc service.FeedService
}

// NewContentUpdateHandler 创建内容更新处理器实例
func NewContentUpdateHandler(feedSvc service.FeedService) *ContentUpdateHandler {
	return &ContentUpdateHandler{feedSvc: feedSvc}
}

// PublishUpdate 为一批学生发布内容更新指针
// POST /feed/publish
func (h *ContentUpdateHandler) PublishUpdate(c *gin.Context) {
	var req request.PublishContentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.feedSvc.PublishUpdate(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetUpdateList 某学生的更新列表
// GET /feed/updates?student_id=Sxxx
func (h *ContentUpdateHandler) GetUpdateList(c *gin.Context) {
	studentId := c.Query("student_id")
	if studentId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.feedSvc.GetUpdateList(studentId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkUpdateRead 学生查看更新指针
// POST /feed/read
func (h *ContentUpdateHandler) MarkUpdateRead(c *gin.Context) {
	var req request.MarkUpdateReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.feedSvc.MarkUpdateRead(req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Badge 某学生的未读更新角标
// GET /feed/badge?student_id=Sxxx
func (h *ContentUpdateHandler) Badge(c *gin.Context) {
	studentId := c.Query("student_id")
	if studentId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.feedSvc.Badge(studentId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetStudentFeed 学生综合视图快照
// GET /feed/snapshot?student_id=Sxxx
// 学生门户 30 秒轮询的拉取入口，与实时事件触发的重新拉取共用
func (h *ContentUpdateHandler) GetStudentFeed(c *gin.Context) {
	studentId := c.Query("student_id")
	if studentId == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.feedSvc.GetStudentFeed(studentId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
