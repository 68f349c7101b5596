// Package feed 实现学生内容更新指针与综合视图业务逻辑
// 发布测验/课件/项目时为相关学生各写一条轻量指针；
// 综合视图把通知、更新、站内信汇总成一次快照，供学生门户轮询
package feed

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"campus_msg_server/internal/dao/mysql/repository"
	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/dto/respond"
	"campus_msg_server/internal/model"
	"campus_msg_server/internal/service/live"
	"campus_msg_server/pkg/enum/content/update_type_enum"
	"campus_msg_server/pkg/enum/user/user_type_enum"
	"campus_msg_server/pkg/errorx"
	"campus_msg_server/pkg/util/snowflake"
)

// InboxProvider 站内信视图提供方
// 综合视图复用定向消息 Service 的查询逻辑，避免两处各写一份
type InboxProvider interface {
	Inbox(recipientType int8, recipientId string) ([]respond.InboxRespond, error)
	Badge(readerType int8, readerId string) (*respond.BadgeRespond, error)
}

// NoticeProvider 通知视图提供方
type NoticeProvider interface {
	GetNoticeList(studentId string) ([]respond.NoticeListRespond, error)
	Badge(studentId string) (*respond.BadgeRespond, error)
}

// feedService 内容更新与综合视图业务逻辑实现
type feedService struct {
	repos     *repository.Repositories
	publisher live.Publisher
	inbox     InboxProvider
	notices   NoticeProvider
}

// NewFeedService 构造函数，注入所有依赖
func NewFeedService(repos *repository.Repositories, publisher live.Publisher, inbox InboxProvider, notices NoticeProvider) *feedService {
	return &feedService{
		repos:     repos,
		publisher: publisher,
		inbox:     inbox,
		notices:   notices,
	}
}

// PublishUpdate 为一批学生发布内容更新指针
func (s *feedService) PublishUpdate(req request.PublishContentUpdateRequest) error {
	if !update_type_enum.IsValid(req.UpdateType) {
		return errorx.New(errorx.CodeInvalidParam, "未知的更新类型")
	}
	if strings.TrimSpace(req.Title) == "" {
		return errorx.New(errorx.CodeInvalidParam, "标题不能为空")
	}

	// 只给真实存在的学生写指针，静默跳过其余 ID
	students, err := s.repos.User.FindByUuids(req.StudentIds)
	if err != nil {
		zap.L().Error("查询目标学生失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	studentIds := make([]string, 0, len(students))
	for _, u := range students {
		if u.UserType == user_type_enum.Student {
			studentIds = append(studentIds, u.Uuid)
		}
	}
	if len(studentIds) == 0 {
		return errorx.New(errorx.CodeInvalidParam, "没有有效的目标学生")
	}

	var referenceId sql.NullString
	if req.ReferenceId != "" {
		referenceId = sql.NullString{String: req.ReferenceId, Valid: true}
	}

	updates := make([]model.ContentUpdate, 0, len(studentIds))
	for _, studentId := range studentIds {
		updates = append(updates, model.ContentUpdate{
			Uuid:        snowflake.GenerateID(),
			StudentId:   studentId,
			UpdateType:  req.UpdateType,
			Title:       req.Title,
			ReferenceId: referenceId,
		})
	}
	if err := s.repos.ContentUpdate.CreateBatch(updates); err != nil {
		zap.L().Error("批量写入内容更新失败", zap.Int("count", len(updates)), zap.Error(err))
		return errorx.ErrServerBusy
	}

	for _, u := range updates {
		_ = s.publisher.Publish(live.NewInsertEvent(live.TableContentUpdate, strconv.FormatInt(u.Uuid, 10), u.StudentId))
	}

	zap.L().Info("内容更新已发布",
		zap.Int8("update_type", req.UpdateType),
		zap.Int("student_count", len(studentIds)),
	)

	return nil
}

// GetUpdateList 某学生的更新列表，创建时间倒序
func (s *feedService) GetUpdateList(studentId string) ([]respond.ContentUpdateRespond, error) {
	updates, err := s.repos.ContentUpdate.FindByStudentId(studentId)
	if err != nil {
		zap.L().Error("查询内容更新列表失败", zap.String("student_id", studentId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.ContentUpdateRespond, 0, len(updates))
	for _, u := range updates {
		item := respond.ContentUpdateRespond{
			Uuid:       strconv.FormatInt(u.Uuid, 10),
			UpdateType: u.UpdateType,
			Title:      u.Title,
			IsRead:     u.IsRead,
			CreatedAt:  u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if u.ReferenceId.Valid {
			item.ReferenceId = u.ReferenceId.String
		}
		rspList = append(rspList, item)
	}
	return rspList, nil
}

// MarkUpdateRead 学生查看更新指针，幂等
func (s *feedService) MarkUpdateRead(req request.MarkUpdateReadRequest) error {
	uuid, err := strconv.ParseInt(req.Uuid, 10, 64)
	if err != nil {
		return errorx.New(errorx.CodeInvalidParam, "更新ID格式错误")
	}
	if err := s.repos.ContentUpdate.MarkRead(uuid, req.StudentId); err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "更新记录不存在")
		}
		zap.L().Error("标记内容更新已读失败", zap.String("uuid", req.Uuid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// Badge 某学生的未读更新角标
func (s *feedService) Badge(studentId string) (*respond.BadgeRespond, error) {
	count, err := s.repos.ContentUpdate.CountUnread(studentId)
	if err != nil {
		zap.L().Error("统计未读更新数失败", zap.String("student_id", studentId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := respond.NewBadgeRespond(count)
	return &rsp, nil
}

// GetStudentFeed 学生综合视图快照
// 学生门户的 30 秒轮询和实时事件触发的重新拉取都调用这里，
// 两种模式看到的数据由同一条查询路径产出
func (s *feedService) GetStudentFeed(studentId string) (*respond.StudentFeedRespond, error) {
	notices, err := s.notices.GetNoticeList(studentId)
	if err != nil {
		return nil, err
	}
	noticeBadge, err := s.notices.Badge(studentId)
	if err != nil {
		return nil, err
	}
	updates, err := s.GetUpdateList(studentId)
	if err != nil {
		return nil, err
	}
	updateBadge, err := s.Badge(studentId)
	if err != nil {
		return nil, err
	}
	inbox, err := s.inbox.Inbox(user_type_enum.Student, studentId)
	if err != nil {
		return nil, err
	}
	messageBadge, err := s.inbox.Badge(user_type_enum.Student, studentId)
	if err != nil {
		return nil, err
	}

	return &respond.StudentFeedRespond{
		Notices:      notices,
		Updates:      updates,
		Inbox:        inbox,
		NoticeBadge:  *noticeBadge,
		UpdateBadge:  *updateBadge,
		MessageBadge: *messageBadge,
		GeneratedAt:  time.Now().Format("2006-01-02 15:04:05"),
	}, nil
}
