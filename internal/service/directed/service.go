// Package directed 实现定向消息业务逻辑
// 定向消息是跨角色站内信：不挂在会话下，携带显式的发送方/接收方角色，
// 支持定向到具体用户和"任意管理员"广播两种投递方式
package directed

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
	"campus_msg_server/pkg/constants"
	"campus_msg_server/pkg/enum/user/user_type_enum"
	"campus_msg_server/pkg/errorx"
	"campus_msg_server/pkg/util/snowflake"
)

// RecipientKind 请求中接收方类别的取值
const (
	KindAdmin    = "admin"
	KindTeacher  = "teacher"
	KindStudent  = "student"
	KindAnyAdmin = "any_admin"
)

// directedMessageService 定向消息业务逻辑实现
type directedMessageService struct {
	repos     *repository.Repositories
	publisher live.Publisher
}

// NewDirectedMessageService 构造函数，注入所有依赖
func NewDirectedMessageService(repos *repository.Repositories, publisher live.Publisher) *directedMessageService {
	return &directedMessageService{
		repos:     repos,
		publisher: publisher,
	}
}

// resolveRecipient 将请求中的接收方类别解析为 (角色, 接收者ID)
// any_admin 解析为 (管理员, NULL)，表示广播给任意管理员
func resolveRecipient(kind string, recipientId string) (int8, sql.NullString, error) {
	switch kind {
	case KindAnyAdmin:
		if recipientId != "" {
			return 0, sql.NullString{}, errorx.New(errorx.CodeInvalidParam, "广播消息不能指定接收者")
		}
		return user_type_enum.Admin, sql.NullString{}, nil
	case KindAdmin:
		if recipientId == "" {
			return 0, sql.NullString{}, errorx.New(errorx.CodeInvalidParam, "接收者不能为空")
		}
		return user_type_enum.Admin, sql.NullString{String: recipientId, Valid: true}, nil
	case KindTeacher:
		if recipientId == "" {
			return 0, sql.NullString{}, errorx.New(errorx.CodeInvalidParam, "接收者不能为空")
		}
		return user_type_enum.Teacher, sql.NullString{String: recipientId, Valid: true}, nil
	case KindStudent:
		if recipientId == "" {
			return 0, sql.NullString{}, errorx.New(errorx.CodeInvalidParam, "接收者不能为空")
		}
		return user_type_enum.Student, sql.NullString{String: recipientId, Valid: true}, nil
	default:
		return 0, sql.NullString{}, errorx.New(errorx.CodeInvalidParam, "未知的接收方类别")
	}
}

// Send 发送定向消息
func (s *directedMessageService) Send(req request.SendDirectedMessageRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}

	recipientType, receiveId, err := resolveRecipient(req.RecipientKind, req.RecipientId)
	if err != nil {
		return "", err
	}

	// 校验发送者存在且角色一致
	sender, err := s.repos.User.FindByUuid(req.SendId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return "", errorx.New(errorx.CodeUserNotExist, "发送用户不存在")
		}
		zap.L().Error("查询发送用户失败", zap.String("send_id", req.SendId), zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	if sender.UserType != req.SenderType {
		return "", errorx.New(errorx.CodeInvalidParam, "发送者角色不匹配")
	}

	// 定向投递时校验接收者存在且角色一致
	if receiveId.Valid {
		receiver, err := s.repos.User.FindByUuid(receiveId.String)
		if err != nil {
			if errorx.GetCode(err) == errorx.CodeNotFound {
				return "", errorx.New(errorx.CodeUserNotExist, "接收用户不存在")
			}
			zap.L().Error("查询接收用户失败", zap.String("receive_id", receiveId.String), zap.Error(err))
			return "", errorx.ErrServerBusy
		}
		if receiver.UserType != recipientType {
			return "", errorx.New(errorx.CodeInvalidParam, "接收者角色不匹配")
		}
	}

	message := model.DirectedMessage{
		Uuid:          snowflake.GenerateID(),
		SenderType:    req.SenderType,
		SendId:        req.SendId,
		RecipientType: recipientType,
		ReceiveId:     receiveId,
		Content:       req.Content,
	}
	if subject := strings.TrimSpace(req.Subject); subject != "" {
		message.Subject = sql.NullString{String: subject, Valid: true}
	}

	if err := s.repos.DirectedMessage.Create(&message); err != nil {
		zap.L().Error("写入定向消息失败",
			zap.String("send_id", req.SendId),
			zap.String("recipient_kind", req.RecipientKind),
			zap.Error(err),
		)
		return "", errorx.ErrServerBusy
	}

	rowId := strconv.FormatInt(message.Uuid, 10)
	if receiveId.Valid {
		_ = s.publisher.Publish(live.NewInsertEvent(live.TableDirectedMessage, rowId, receiveId.String))
	} else {
		// 广播消息按表投递给所有订阅的管理员端
		_ = s.publisher.Publish(live.NewInsertEvent(live.TableDirectedMessage, rowId, ""))
	}

	zap.L().Info("定向消息已发送",
		zap.String("uuid", rowId),
		zap.String("send_id", req.SendId),
		zap.String("recipient_kind", req.RecipientKind),
	)

	return rowId, nil
}

// deriveReplySubject 从原消息派生回复主题
// 原消息有主题时为 "Re: 原主题"，无主题时为 "Re: No Subject"
func deriveReplySubject(original *model.DirectedMessage) string {
	if original.Subject.Valid && strings.TrimSpace(original.Subject.String) != "" {
		return constants.REPLY_SUBJECT_PREFIX + original.Subject.String
	}
	return constants.REPLY_SUBJECT_PREFIX + constants.NO_SUBJECT_PLACEHOLDER
}

// Reply 回复定向消息
// 回复永远定向到原消息的发送者；发送者不复存在时回复被拒绝
func (s *directedMessageService) Reply(req request.ReplyDirectedMessageRequest) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}

	originalUuid, err := strconv.ParseInt(req.ReplyToUuid, 10, 64)
	if err != nil {
		return "", errorx.New(errorx.CodeInvalidParam, "原消息ID格式错误")
	}

	original, err := s.repos.DirectedMessage.FindByUuid(originalUuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return "", errorx.New(errorx.CodeNotFound, "原消息不存在")
		}
		zap.L().Error("查询原消息失败", zap.String("uuid", req.ReplyToUuid), zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	// 回复目标是原消息发送者，发送者被删除时无法回复
	replyTarget, err := s.repos.User.FindByUuid(original.SendId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return "", errorx.New(errorx.CodeInvalidParam, "原消息发送者已不存在，无法回复")
		}
		zap.L().Error("查询原消息发送者失败", zap.String("send_id", original.SendId), zap.Error(err))
		return "", errorx.ErrServerBusy
	}

	sender, err := s.repos.User.FindByUuid(req.SendId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return "", errorx.New(errorx.CodeUserNotExist, "发送用户不存在")
		}
		zap.L().Error("查询发送用户失败", zap.String("send_id", req.SendId), zap.Error(err))
		return "", errorx.ErrServerBusy
	}
	if sender.UserType != req.SenderType {
		return "", errorx.New(errorx.CodeInvalidParam, "发送者角色不匹配")
	}

	message := model.DirectedMessage{
		Uuid:          snowflake.GenerateID(),
		SenderType:    req.SenderType,
		SendId:        req.SendId,
		RecipientType: replyTarget.UserType,
		ReceiveId:     sql.NullString{String: replyTarget.Uuid, Valid: true},
		Subject:       sql.NullString{String: deriveReplySubject(original), Valid: true},
		Content:       req.Content,
	}

	if err := s.repos.DirectedMessage.Create(&message); err != nil {
		zap.L().Error("写入回复消息失败",
			zap.String("send_id", req.SendId),
			zap.String("reply_to", req.ReplyToUuid),
			zap.Error(err),
		)
		return "", errorx.ErrServerBusy
	}

	rowId := strconv.FormatInt(message.Uuid, 10)
	_ = s.publisher.Publish(live.NewInsertEvent(live.TableDirectedMessage, rowId, replyTarget.Uuid))

	return rowId, nil
}

// Inbox 收件箱列表，创建时间倒序
// 管理员视角并入"任意管理员"广播，广播的已读状态按回执表折算
func (s *directedMessageService) Inbox(recipientType int8, recipientId string) ([]respond.InboxRespond, error) {
	includeBroadcast := recipientType == user_type_enum.Admin

	messages, err := s.repos.DirectedMessage.FindInbox(recipientType, recipientId, includeBroadcast)
	if err != nil {
		zap.L().Error("查询收件箱失败", zap.String("recipient_id", recipientId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 广播消息的 is_read 字段无意义，按本人回执折算
	readBroadcast := make(map[int64]bool)
	if includeBroadcast {
		broadcastUuids := make([]int64, 0)
		for _, m := range messages {
			if !m.ReceiveId.Valid {
				broadcastUuids = append(broadcastUuids, m.Uuid)
			}
		}
		if len(broadcastUuids) > 0 {
			readUuids, err := s.repos.DirectedMessage.FindReadBroadcastUuids(recipientId, broadcastUuids)
			if err != nil {
				zap.L().Error("查询广播已读回执失败", zap.String("reader_id", recipientId), zap.Error(err))
				return nil, errorx.ErrServerBusy
			}
			for _, uuid := range readUuids {
				readBroadcast[uuid] = true
			}
		}
	}

	// 批量取发送者资料；查不到的发送者已被删除，对应消息禁用回复
	senderIds := make([]string, 0, len(messages))
	for _, m := range messages {
		senderIds = append(senderIds, m.SendId)
	}
	senders, err := s.repos.User.FindByUuids(senderIds)
	if err != nil {
		zap.L().Error("查询发送者资料失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	senderByUuid := make(map[string]model.UserInfo, len(senders))
	for _, u := range senders {
		senderByUuid[u.Uuid] = u
	}

	rspList := make([]respond.InboxRespond, 0, len(messages))
	for _, m := range messages {
		sender, senderExists := senderByUuid[m.SendId]
		isRead := m.IsRead
		if !m.ReceiveId.Valid {
			isRead = readBroadcast[m.Uuid]
		}
		item := respond.InboxRespond{
			Uuid:       strconv.FormatInt(m.Uuid, 10),
			SenderType: m.SenderType,
			SendId:     m.SendId,
			SenderName: sender.Name,
			Content:    m.Content,
			IsRead:     isRead,
			CanReply:   senderExists,
			CreatedAt:  m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if m.Subject.Valid {
			item.Subject = m.Subject.String
		}
		rspList = append(rspList, item)
	}
	return rspList, nil
}

// MarkRead 单条标记已读
// 定向消息置 is_read 并写 read_at（仅首次生效）；广播消息写本人回执，重复为幂等
func (s *directedMessageService) MarkRead(req request.MarkDirectedReadRequest) error {
	uuid, err := strconv.ParseInt(req.Uuid, 10, 64)
	if err != nil {
		return errorx.New(errorx.CodeInvalidParam, "消息ID格式错误")
	}

	message, err := s.repos.DirectedMessage.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "消息不存在")
		}
		zap.L().Error("查询定向消息失败", zap.String("uuid", req.Uuid), zap.Error(err))
		return errorx.ErrServerBusy
	}

	if !message.ReceiveId.Valid {
		// 广播消息：每个管理员独立记已读回执
		if req.ReaderType != user_type_enum.Admin {
			return errorx.New(errorx.CodeInvalidParam, "阅读者不是该消息的接收者")
		}
		receipt := model.DirectedMessageRead{
			MessageUuid: uuid,
			ReaderId:    req.ReaderId,
		}
		if err := s.repos.DirectedMessage.CreateReadReceipt(&receipt); err != nil {
			zap.L().Error("写入广播已读回执失败",
				zap.String("uuid", req.Uuid),
				zap.String("reader_id", req.ReaderId),
				zap.Error(err),
			)
			return errorx.ErrServerBusy
		}
		return nil
	}

	if message.ReceiveId.String != req.ReaderId || message.RecipientType != req.ReaderType {
		return errorx.New(errorx.CodeInvalidParam, "阅读者不是该消息的接收者")
	}
	if err := s.repos.DirectedMessage.MarkRead(uuid, time.Now()); err != nil {
		zap.L().Error("标记定向消息已读失败", zap.String("uuid", req.Uuid), zap.Error(err))
		return errorx.ErrServerBusy
	}

	// 发送者端刷新已读回执显示
	_ = s.publisher.Publish(live.NewUpdateEvent(live.TableDirectedMessage, req.Uuid, message.SendId))

	return nil
}

// MarkAllRead 全部标记已读，快照语义
// 只影响调用时刻已存在的未读项，调用期间新到达的消息保持未读
func (s *directedMessageService) MarkAllRead(req request.MarkAllReadRequest) error {
	now := time.Now()

	if err := s.repos.DirectedMessage.MarkAllReadDirect(req.ReaderType, req.ReaderId, now); err != nil {
		zap.L().Error("批量标记定向消息已读失败", zap.String("reader_id", req.ReaderId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	// 管理员还要为快照中的每条未读广播补写回执
	if req.ReaderType == user_type_enum.Admin {
		unreadUuids, err := s.repos.DirectedMessage.FindUnreadBroadcastUuids(req.ReaderId)
		if err != nil {
			zap.L().Error("查询未读广播失败", zap.String("reader_id", req.ReaderId), zap.Error(err))
			return errorx.ErrServerBusy
		}
		for _, uuid := range unreadUuids {
			receipt := model.DirectedMessageRead{
				MessageUuid: uuid,
				ReaderId:    req.ReaderId,
			}
			if err := s.repos.DirectedMessage.CreateReadReceipt(&receipt); err != nil {
				zap.L().Error("写入广播已读回执失败",
					zap.Int64("uuid", uuid),
					zap.String("reader_id", req.ReaderId),
					zap.Error(err),
				)
				return errorx.ErrServerBusy
			}
		}
	}

	return nil
}

// Badge 未读角标
// 管理员计入"任意管理员"广播中本人尚无回执的部分
func (s *directedMessageService) Badge(readerType int8, readerId string) (*respond.BadgeRespond, error) {
	count, err := s.repos.DirectedMessage.CountUnreadDirect(readerType, readerId)
	if err != nil {
		zap.L().Error("统计定向未读数失败", zap.String("reader_id", readerId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if readerType == user_type_enum.Admin {
		broadcastCount, err := s.repos.DirectedMessage.CountUnreadBroadcast(readerId)
		if err != nil {
			zap.L().Error("统计广播未读数失败", zap.String("reader_id", readerId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		count += broadcastCount
	}

	rsp := respond.NewBadgeRespond(count)
	return &rsp, nil
}
