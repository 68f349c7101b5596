// Package user 实现用户业务逻辑
// 注册、登录和角色查询；角色前缀写进 uuid（A 管理员、T 教师、S 学生）
package user

import (
	"fmt"

	"go.uber.org/zap"

	"campus_msg_server/internal/dao/mysql/repository"
	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/dto/respond"
	"campus_msg_server/internal/model"
	"campus_msg_server/pkg/enum/user/user_status_enum"
	"campus_msg_server/pkg/enum/user/user_type_enum"
	"campus_msg_server/pkg/errorx"
	"campus_msg_server/pkg/util/jwt"
	"campus_msg_server/pkg/util/random"
)

// userService 用户业务逻辑实现
type userService struct {
	repos *repository.Repositories
}

// NewUserService 构造函数
func NewUserService(repos *repository.Repositories) *userService {
	return &userService{repos: repos}
}

// uuidPrefix 按角色取 uuid 前缀
func uuidPrefix(userType int8) string {
	switch userType {
	case user_type_enum.Admin:
		return "A"
	case user_type_enum.Teacher:
		return "T"
	default:
		return "S"
	}
}

// Register 用户注册
// 手机号唯一，密码经 BeforeSave Hook 哈希后入库
func (s *userService) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	_, err := s.repos.User.FindByTelephone(req.Telephone)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该手机号已注册")
	}
	if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error("查询手机号失败", zap.String("telephone", req.Telephone), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	user := model.UserInfo{
		Uuid:        fmt.Sprintf("%s%s", uuidPrefix(req.UserType), random.GetNowAndLenRandomString(11)),
		Name:        req.Name,
		Telephone:   req.Telephone,
		Email:       req.Email,
		UserType:    req.UserType,
		Status:      user_status_enum.NORMAL,
		RawPassword: req.Password,
	}
	if err := s.repos.User.Create(&user); err != nil {
		zap.L().Error("创建用户失败", zap.String("telephone", req.Telephone), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("用户注册成功",
		zap.String("uuid", user.Uuid),
		zap.Int8("user_type", user.UserType),
	)

	return &respond.RegisterRespond{
		Uuid:     user.Uuid,
		Name:     user.Name,
		UserType: user.UserType,
	}, nil
}

// Login 密码登录，签发 Access/Refresh Token
func (s *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByTelephone(req.Telephone)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("telephone", req.Telephone), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if user.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeInvalidParam, "该账号已被禁用")
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}

	accessToken, err := jwt.GenerateAccessToken(user.Uuid, user.UserType)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.String("uuid", user.Uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, _, err := jwt.GenerateRefreshToken(user.Uuid, user.UserType)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.String("uuid", user.Uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Name:         user.Name,
		Avatar:       user.Avatar,
		UserType:     user.UserType,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserInfo 获取单个用户信息
func (s *userService) GetUserInfo(uuid string) (*respond.UserInfoRespond, error) {
	user, err := s.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("uuid", uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.UserInfoRespond{
		Uuid:      user.Uuid,
		Name:      user.Name,
		Telephone: user.Telephone,
		Email:     user.Email,
		Avatar:    user.Avatar,
		UserType:  user.UserType,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// GetAdminList 获取全部管理员
// 会话目标选择器和定向消息的管理员收件人选择使用
func (s *userService) GetAdminList() ([]respond.UserListRespond, error) {
	return s.GetUserList(user_type_enum.Admin)
}

// GetUserList 按角色获取用户列表
func (s *userService) GetUserList(userType int8) ([]respond.UserListRespond, error) {
	users, err := s.repos.User.FindByType(userType)
	if err != nil {
		zap.L().Error("按角色查询用户失败", zap.Int8("user_type", userType), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.UserListRespond, 0, len(users))
	for _, u := range users {
		rspList = append(rspList, respond.UserListRespond{
			Uuid:     u.Uuid,
			Name:     u.Name,
			Avatar:   u.Avatar,
			UserType: u.UserType,
			Status:   u.Status,
		})
	}
	return rspList, nil
}
