// Package conversation 实现管理员私聊会话业务逻辑
// 会话按参与者对唯一：双方 uuid 按字典序规范化后存储并建唯一索引，
// 无论哪一方先发起，两人之间永远只有一条会话
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"campus_msg_server/internal/dao/mysql/repository"
	myredis "campus_msg_server/internal/dao/redis"
	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/dto/respond"
	"campus_msg_server/internal/model"
	"campus_msg_server/internal/service/live"
	"campus_msg_server/pkg/constants"
	"campus_msg_server/pkg/enum/user/user_status_enum"
	"campus_msg_server/pkg/enum/user/user_type_enum"
	"campus_msg_server/pkg/errorx"
	"campus_msg_server/pkg/util/random"
	"campus_msg_server/pkg/util/snowflake"
)

// conversationService 会话业务逻辑实现
type conversationService struct {
	repos     *repository.Repositories
	cache     myredis.AsyncCacheService
	publisher live.Publisher
}

// NewConversationService 构造函数，注入所有依赖
func NewConversationService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, publisher live.Publisher) *conversationService {
	return &conversationService{
		repos:     repos,
		cache:     cacheService,
		publisher: publisher,
	}
}

// canonicalPair 规范化参与者对，返回 (较小, 较大)
func canonicalPair(one, two string) (string, string) {
	if one > two {
		return two, one
	}
	return one, two
}

// OpenConversation 查找或创建两人之间的会话
func (s *conversationService) OpenConversation(req request.OpenConversationRequest) (*respond.ConversationRespond, error) {
	if req.OwnerId == req.TargetId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能与自己建立会话")
	}

	// 1. 校验双方都是正常状态的管理员
	for _, uuid := range []string{req.OwnerId, req.TargetId} {
		user, err := s.repos.User.FindByUuid(uuid)
		if err != nil {
			if errorx.GetCode(err) == errorx.CodeNotFound {
				zap.L().Warn("会话参与者不存在",
					zap.String("uuid", uuid),
					zap.String("operation", "open_conversation"),
				)
				return nil, errorx.New(errorx.CodeUserNotExist, "会话参与者不存在")
			}
			zap.L().Error("查询会话参与者失败", zap.String("uuid", uuid), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		if user.UserType != user_type_enum.Admin {
			return nil, errorx.New(errorx.CodeInvalidParam, "仅管理员之间可以建立私聊会话")
		}
		if user.Status == user_status_enum.DISABLE {
			return nil, errorx.New(errorx.CodeInvalidParam, "该用户被禁用了")
		}
	}

	a, b := canonicalPair(req.OwnerId, req.TargetId)

	// 2. 按规范化后的参与者对查找已有会话
	existing, err := s.repos.Conversation.FindByParticipantPair(a, b)
	if err == nil {
		return s.toConversationRespond(existing), nil
	}
	if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error("查询已有会话失败",
			zap.String("participant_a", a),
			zap.String("participant_b", b),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}

	// 3. 未找到则创建
	conversation := model.Conversation{
		Uuid:         fmt.Sprintf("C%s", random.GetNowAndLenRandomString(11)),
		ParticipantA: a,
		ParticipantB: b,
	}
	if err := s.repos.Conversation.Create(&conversation); err != nil {
		// 两端同时发起首聊撞上唯一索引，重读对方刚插入的行
		if errorx.IsConflict(err) {
			existing, rerr := s.repos.Conversation.FindByParticipantPair(a, b)
			if rerr != nil {
				zap.L().Error("冲突后重读会话失败",
					zap.String("participant_a", a),
					zap.String("participant_b", b),
					zap.Error(rerr),
				)
				return nil, errorx.ErrServerBusy
			}
			zap.L().Info("并发创建会话冲突，返回已有会话",
				zap.String("conversation_id", existing.Uuid),
			)
			return s.toConversationRespond(existing), nil
		}
		zap.L().Error("创建会话失败",
			zap.String("participant_a", a),
			zap.String("participant_b", b),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}

	zap.L().Info("创建会话成功",
		zap.String("conversation_id", conversation.Uuid),
		zap.String("participant_a", a),
		zap.String("participant_b", b),
	)

	_ = s.publisher.Publish(live.NewInsertEvent(live.TableConversation, conversation.Uuid, a))
	_ = s.publisher.Publish(live.NewInsertEvent(live.TableConversation, conversation.Uuid, b))

	return s.toConversationRespond(&conversation), nil
}

// GetConversationList 获取某用户参与的会话列表，按最近消息时间倒序
func (s *conversationService) GetConversationList(ownerId string) ([]respond.ConversationListRespond, error) {
	conversations, err := s.repos.Conversation.FindByParticipant(ownerId)
	if err != nil {
		zap.L().Error("查询会话列表失败", zap.String("owner_id", ownerId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 批量取对方的用户资料，避免 N+1 查询
	otherIds := make([]string, 0, len(conversations))
	for _, conv := range conversations {
		if conv.ParticipantA == ownerId {
			otherIds = append(otherIds, conv.ParticipantB)
		} else {
			otherIds = append(otherIds, conv.ParticipantA)
		}
	}
	others, err := s.repos.User.FindByUuids(otherIds)
	if err != nil {
		zap.L().Error("查询会话对方资料失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	otherByUuid := make(map[string]model.UserInfo, len(others))
	for _, u := range others {
		otherByUuid[u.Uuid] = u
	}

	rspList := make([]respond.ConversationListRespond, 0, len(conversations))
	for i, conv := range conversations {
		unread, err := s.repos.AdminMessage.CountUnread(conv.Uuid, ownerId)
		if err != nil {
			zap.L().Error("统计会话未读数失败",
				zap.String("conversation_id", conv.Uuid),
				zap.Error(err),
			)
			return nil, errorx.ErrServerBusy
		}
		other := otherByUuid[otherIds[i]]
		item := respond.ConversationListRespond{
			ConversationId: conv.Uuid,
			OtherId:        other.Uuid,
			OtherName:      other.Name,
			OtherAvatar:    other.Avatar,
			LastMessage:    conv.LastMessage,
			UnreadCount:    unread,
		}
		if conv.LastMessageAt.Valid {
			item.LastMessageAt = conv.LastMessageAt.Time.Format("2006-01-02 15:04:05")
		}
		rspList = append(rspList, item)
	}
	return rspList, nil
}

// GetMessageList 获取会话内消息，创建时间升序
// 走 Redis 缓存，发消息和标记已读时由异步任务失效
func (s *conversationService) GetMessageList(conversationId string) ([]respond.MessageListRespond, error) {
	cacheKey := "conversation_messages_" + conversationId

	rspString, err := s.cache.GetOrError(context.Background(), cacheKey)
	if err == nil {
		var rsp []respond.MessageListRespond
		if err := json.Unmarshal([]byte(rspString), &rsp); err != nil {
			zap.L().Error("json unmarshal cache error", zap.Error(err))
			// 缓存解析失败也继续查数据库
		} else {
			return rsp, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		zap.L().Error("redis get key error", zap.Error(err))
	}

	messageList, err := s.repos.AdminMessage.FindByConversationId(conversationId)
	if err != nil {
		zap.L().Error("查询会话消息失败", zap.String("conversation_id", conversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rspList := make([]respond.MessageListRespond, 0, len(messageList))
	for _, message := range messageList {
		rspList = append(rspList, toMessageRespond(&message))
	}

	// 异步回填缓存
	s.cache.SubmitTask(func() {
		jsonBytes, err := json.Marshal(rspList)
		if err != nil {
			zap.L().Error("json marshal error", zap.Error(err))
			return
		}
		if err := s.cache.Set(context.Background(), cacheKey, string(jsonBytes), time.Duration(constants.REDIS_TIMEOUT)*time.Minute); err != nil {
			zap.L().Error("redis set key error", zap.Error(err))
		}
	})

	return rspList, nil
}

// SendMessage 在会话内发送消息
// 内容为空或全空白时拒绝，消息只追加不可修改
func (s *conversationService) SendMessage(req request.SendMessageRequest) (*respond.MessageListRespond, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}

	conversation, err := s.repos.Conversation.FindByUuid(req.ConversationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		zap.L().Error("查询会话失败", zap.String("conversation_id", req.ConversationId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if req.SendId != conversation.ParticipantA && req.SendId != conversation.ParticipantB {
		return nil, errorx.New(errorx.CodeInvalidParam, "发送者不是会话参与者")
	}

	now := time.Now()
	message := model.AdminMessage{
		Uuid:           snowflake.GenerateID(),
		ConversationId: req.ConversationId,
		SendId:         req.SendId,
		Content:        req.Content,
	}
	if err := s.repos.AdminMessage.Create(&message); err != nil {
		zap.L().Error("写入会话消息失败",
			zap.String("conversation_id", req.ConversationId),
			zap.String("send_id", req.SendId),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}

	// 刷新会话摘要，用于会话列表排序和预览
	if err := s.repos.Conversation.UpdateLastMessage(req.ConversationId, req.Content, now); err != nil {
		zap.L().Error("更新会话摘要失败", zap.String("conversation_id", req.ConversationId), zap.Error(err))
	}

	// 异步失效消息列表缓存
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), "conversation_messages_"+req.ConversationId); err != nil {
			zap.L().Error("redis delete key error", zap.Error(err))
		}
	})

	// 通知双方重新拉取
	rowId := fmt.Sprintf("%d", message.Uuid)
	_ = s.publisher.Publish(live.NewInsertEvent(live.TableAdminMessage, rowId, conversation.ParticipantA))
	_ = s.publisher.Publish(live.NewInsertEvent(live.TableAdminMessage, rowId, conversation.ParticipantB))

	rsp := toMessageRespond(&message)
	rsp.CreatedAt = now.Format("2006-01-02 15:04:05")
	return &rsp, nil
}

// MarkConversationRead 把对方发来的未读消息全部置已读
// 单条 UPDATE 实现，重复调用为空操作
func (s *conversationService) MarkConversationRead(req request.MarkConversationReadRequest) error {
	conversation, err := s.repos.Conversation.FindByUuid(req.ConversationId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeNotFound, "会话不存在")
		}
		zap.L().Error("查询会话失败", zap.String("conversation_id", req.ConversationId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if req.ReaderId != conversation.ParticipantA && req.ReaderId != conversation.ParticipantB {
		return errorx.New(errorx.CodeInvalidParam, "阅读者不是会话参与者")
	}

	if err := s.repos.AdminMessage.MarkConversationRead(req.ConversationId, req.ReaderId); err != nil {
		zap.L().Error("标记会话已读失败",
			zap.String("conversation_id", req.ConversationId),
			zap.String("reader_id", req.ReaderId),
			zap.Error(err),
		)
		return errorx.ErrServerBusy
	}

	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), "conversation_messages_"+req.ConversationId); err != nil {
			zap.L().Error("redis delete key error", zap.Error(err))
		}
	})

	// 对方需要刷新"已读"回执显示
	other := conversation.ParticipantA
	if other == req.ReaderId {
		other = conversation.ParticipantB
	}
	_ = s.publisher.Publish(live.NewUpdateEvent(live.TableAdminMessage, req.ConversationId, other))

	return nil
}

// toConversationRespond 模型转响应
func (s *conversationService) toConversationRespond(conversation *model.Conversation) *respond.ConversationRespond {
	rsp := respond.ConversationRespond{
		ConversationId: conversation.Uuid,
		ParticipantA:   conversation.ParticipantA,
		ParticipantB:   conversation.ParticipantB,
		LastMessage:    conversation.LastMessage,
	}
	if conversation.LastMessageAt.Valid {
		rsp.LastMessageAt = conversation.LastMessageAt.Time.Format("2006-01-02 15:04:05")
	}
	return &rsp
}

func toMessageRespond(message *model.AdminMessage) respond.MessageListRespond {
	return respond.MessageListRespond{
		Uuid:      fmt.Sprintf("%d", message.Uuid),
		SendId:    message.SendId,
		Content:   message.Content,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
