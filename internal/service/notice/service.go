// Package notice 实现学生通知业务逻辑
// 教职工向学生单向下发；警告/考勤类通知落库后触发短信提醒
package notice

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"campus_msg_server/internal/dao/mysql/repository"
	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/dto/respond"
	"campus_msg_server/internal/infrastructure/sms"
	"campus_msg_server/internal/model"
	"campus_msg_server/internal/service/live"
	"campus_msg_server/pkg/enum/notice/notice_type_enum"
	"campus_msg_server/pkg/enum/user/user_type_enum"
	"campus_msg_server/pkg/errorx"
	"campus_msg_server/pkg/util/snowflake"
)

// noticeService 学生通知业务逻辑实现
type noticeService struct {
	repos      *repository.Repositories
	publisher  live.Publisher
	smsService sms.SmsService
}

// NewNoticeService 构造函数，注入所有依赖
func NewNoticeService(repos *repository.Repositories, publisher live.Publisher, smsService sms.SmsService) *noticeService {
	return &noticeService{
		repos:      repos,
		publisher:  publisher,
		smsService: smsService,
	}
}

// PostNotice 发布通知
func (s *noticeService) PostNotice(req request.PostNoticeRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", errorx.New(errorx.CodeInvalidParam, "通知正文不能为空")
	}
	if !notice_type_enum.IsValid(req.NoticeType) {
		return "", errorx.New(errorx.CodeInvalidParam, "未知的通知类型")
	}

	// 发布者必须是管理员或教师
	poster, err := s.repos.User.FindByUuid(req.PostedBy)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return "", errorx.New(errorx.CodeUserNotExist, "发布者不存在")
		}
		zap.L().Error("查询发布者失败", zap.String("posted_by", req.PostedBy), zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	if poster.UserType == user_type_enum.Student {
		return "", errorx.New(errorx.CodeInvalidParam, "学生不能发布通知")
	}

	student, err := s.repos.User.FindByUuid(req.StudentId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return "", errorx.New(errorx.CodeUserNotExist, "目标学生不存在")
		}
		zap.L().Error("查询目标学生失败", zap.String("student_id", req.StudentId), zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	if student.UserType != user_type_enum.Student {
		return "", errorx.New(errorx.CodeInvalidParam, "通知只能发给学生")
	}

	notice := model.Notice{
		Uuid:       snowflake.GenerateID(),
		StudentId:  req.StudentId,
		PostedBy:   req.PostedBy,
		NoticeType: req.NoticeType,
		Title:      req.Title,
		Content:    req.Content,
	}
	if err := s.repos.Notice.Create(&notice); err != nil {
		zap.L().Error("写入通知失败",
			zap.String("student_id", req.StudentId),
			zap.String("posted_by", req.PostedBy),
			zap.Error(err),
		)
		return "", errorx.ErrServerBusy
	}

	rowId := strconv.FormatInt(notice.Uuid, 10)
	_ = s.publisher.Publish(live.NewInsertEvent(live.TableNotice, rowId, req.StudentId))

	// 警告/考勤类通知额外发短信提醒
	// 短信失败不回滚通知，站内通知本身已经落库
	if notice_type_enum.NeedSmsAlert(req.NoticeType) && student.Telephone != "" {
		if err := s.smsService.SendNoticeAlert(student.Telephone, req.Title); err != nil {
			zap.L().Error("发送通知提醒短信失败",
				zap.String("student_id", req.StudentId),
				zap.String("uuid", rowId),
				zap.Error(err),
			)
		}
	}

	zap.L().Info("通知已发布",
		zap.String("uuid", rowId),
		zap.String("student_id", req.StudentId),
		zap.Int8("notice_type", req.NoticeType),
	)

	return rowId, nil
}

// GetNoticeList 某学生的通知列表，创建时间倒序
func (s *noticeService) GetNoticeList(studentId string) ([]respond.NoticeListRespond, error) {
	notices, err := s.repos.Notice.FindByStudentId(studentId)
	if err != nil {
		zap.L().Error("查询通知列表失败", zap.String("student_id", studentId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.NoticeListRespond, 0, len(notices))
	for _, n := range notices {
		rspList = append(rspList, respond.NoticeListRespond{
			Uuid:       strconv.FormatInt(n.Uuid, 10),
			PostedBy:   n.PostedBy,
			NoticeType: n.NoticeType,
			Title:      n.Title,
			Content:    n.Content,
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rspList, nil
}

// MarkNoticeRead 学生查看通知
// 首次置已读并写 read_at，重复调用为空操作
func (s *noticeService) MarkNoticeRead(req request.MarkNoticeReadRequest) error {
	uuid, err := strconv.ParseInt(req.Uuid, 10, 64)
	if err != nil {
		return errorx.New(errorx.CodeInvalidParam, "通知ID格式错误")
	}

	notice, err := s.repos.Notice.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "通知不存在")
		}
		zap.L().Error("查询通知失败", zap.String("uuid", req.Uuid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if notice.StudentId != req.StudentId {
		return errorx.New(errorx.CodeInvalidParam, "只能标记自己的通知")
	}

	if err := s.repos.Notice.MarkRead(uuid, req.StudentId, time.Now()); err != nil {
		zap.L().Error("标记通知已读失败", zap.String("uuid", req.Uuid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// Badge 某学生的未读通知角标
func (s *noticeService) Badge(studentId string) (*respond.BadgeRespond, error) {
	count, err := s.repos.Notice.CountUnread(studentId)
	if err != nil {
		zap.L().Error("统计未读通知数失败", zap.String("student_id", studentId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := respond.NewBadgeRespond(count)
	return &rsp, nil
}
