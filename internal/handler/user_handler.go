// Package handler 提供 HTTP 请求处理器
// 本文件处理用户相关的 API 请求
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/service"
	"campus_msg_server/pkg/errorx"
)

// UserHandler 用户请求处理器
// 通过构造函数注入 UserService，遵循依赖倒置原则
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register 用户注册
// POST /user/register
// 请求体: request.RegisterRequest
// 响应: respond.RegisterRespond
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Login 用户登录（密码登录）
// POST /user/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond (用户信息 + JWT Token)
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserInfo 获取单个用户信息
// GET /user/:uuid
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	uuid := c.Param("uuid")
	if uuid == "" {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.userSvc.GetUserInfo(uuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetAdminList 获取全部管理员
// GET /user/admins
// 会话目标选择器和定向消息收件人选择使用
func (h *UserHandler) GetAdminList(c *gin.Context) {
	data, err := h.userSvc.GetAdminList()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserList 按角色获取用户列表
// GET /user/list?user_type=2
func (h *UserHandler) GetUserList(c *gin.Context) {
	userType, err := strconv.ParseInt(c.Query("user_type"), 10, 8)
	if err != nil {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.userSvc.GetUserList(int8(userType))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
