package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"campus_msg_server/internal/dao/mysql/repository"
	"campus_msg_server/internal/dto/request"
	"campus_msg_server/internal/model"
	"campus_msg_server/internal/service/live"
	"campus_msg_server/pkg/enum/user/user_type_enum"
	"campus_msg_server/pkg/errorx"
)

// ==================== 内存版测试替身 ====================

type fakeUserRepo struct {
	users map[string]*model.UserInfo
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	if u, ok := f.users[uuid]; ok {
		return u, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeUserRepo) FindByTelephone(telephone string) (*model.UserInfo, error) {
	for _, u := range f.users {
		if u.Telephone == telephone {
			return u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	result := make([]model.UserInfo, 0, len(uuids))
	for _, uuid := range uuids {
		if u, ok := f.users[uuid]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) FindByType(userType int8) ([]model.UserInfo, error) {
	result := make([]model.UserInfo, 0)
	for _, u := range f.users {
		if u.UserType == userType {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) Create(user *model.UserInfo) error {
	f.users[user.Uuid] = user
	return nil
}

type fakeConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*model.Conversation // key: participant_a + "|" + participant_b
	conflictOnce  bool                           // 第一次 Create 时模拟唯一索引冲突
}

func pairKey(a, b string) string { return a + "|" + b }

func (f *fakeConversationRepo) FindByUuid(uuid string) (*model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conversations {
		if c.Uuid == uuid {
			return c, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeConversationRepo) FindByParticipantPair(a, b string) (*model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.conversations[pairKey(a, b)]; ok {
		return c, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "record not found")
}

func (f *fakeConversationRepo) FindByParticipant(userId string) ([]model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.Conversation, 0)
	for _, c := range f.conversations {
		if c.ParticipantA == userId || c.ParticipantB == userId {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (f *fakeConversationRepo) Create(conversation *model.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey(conversation.ParticipantA, conversation.ParticipantB)
	if f.conflictOnce {
		// 模拟另一端抢先插入：先写入一条"对方的"记录再报冲突
		f.conflictOnce = false
		f.conversations[key] = &model.Conversation{
			Uuid:         "C_concurrent",
			ParticipantA: conversation.ParticipantA,
			ParticipantB: conversation.ParticipantB,
		}
		return errorx.New(errorx.CodeConflict, "duplicated key")
	}
	if _, ok := f.conversations[key]; ok {
		return errorx.New(errorx.CodeConflict, "duplicated key")
	}
	f.conversations[key] = conversation
	return nil
}

func (f *fakeConversationRepo) UpdateLastMessage(uuid string, preview string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conversations {
		if c.Uuid == uuid {
			c.LastMessage = preview
			c.LastMessageAt.Time = at
			c.LastMessageAt.Valid = true
			return nil
		}
	}
	return errorx.New(errorx.CodeNotFound, "record not found")
}

type fakeAdminMessageRepo struct {
	mu       sync.Mutex
	messages []*model.AdminMessage
}

func (f *fakeAdminMessageRepo) FindByConversationId(conversationId string) ([]model.AdminMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.AdminMessage, 0)
	for _, m := range f.messages {
		if m.ConversationId == conversationId {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeAdminMessageRepo) Create(message *model.AdminMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeAdminMessageRepo) CountUnread(conversationId, readerId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.messages {
		if m.ConversationId == conversationId && m.SendId != readerId && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeAdminMessageRepo) MarkConversationRead(conversationId, readerId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.messages {
		if m.ConversationId == conversationId && m.SendId != readerId {
			m.IsRead = true
		}
	}
	return nil
}

// fakeCache 内存缓存，实现 AsyncCacheService
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string]string)} }

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeCache) GetOrError(ctx context.Context, key string) (string, error) {
	return "", redis.Nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeCache) DeleteByPattern(ctx context.Context, pattern string) error { return nil }

func (f *fakeCache) DeleteByPatterns(ctx context.Context, patterns []string) error { return nil }

func (f *fakeCache) SubmitTask(action func()) { action() }

func newTestService(userRepo *fakeUserRepo, convRepo *fakeConversationRepo, msgRepo *fakeAdminMessageRepo) *conversationService {
	repos := &repository.Repositories{
		User:         userRepo,
		Conversation: convRepo,
		AdminMessage: msgRepo,
	}
	return NewConversationService(repos, newFakeCache(), live.NopPublisher{})
}

func adminUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.UserInfo{
		"A_alice": {Uuid: "A_alice", Name: "Alice", UserType: user_type_enum.Admin},
		"A_bob":   {Uuid: "A_bob", Name: "Bob", UserType: user_type_enum.Admin},
	}}
}

// ==================== 测试用例 ====================

// 无论哪一方发起，两人之间只有一条会话
func TestOpenConversationOrderIndependent(t *testing.T) {
	svc := newTestService(adminUsers(), &fakeConversationRepo{conversations: map[string]*model.Conversation{}}, &fakeAdminMessageRepo{})

	first, err := svc.OpenConversation(request.OpenConversationRequest{OwnerId: "A_bob", TargetId: "A_alice"})
	if err != nil {
		t.Fatalf("open conversation: %v", err)
	}
	second, err := svc.OpenConversation(request.OpenConversationRequest{OwnerId: "A_alice", TargetId: "A_bob"})
	if err != nil {
		t.Fatalf("open conversation reversed: %v", err)
	}

	if first.ConversationId != second.ConversationId {
		t.Fatalf("expected same conversation, got %s and %s", first.ConversationId, second.ConversationId)
	}
	if first.ParticipantA >= first.ParticipantB {
		t.Fatalf("participants not canonical: %s >= %s", first.ParticipantA, first.ParticipantB)
	}
}

// 两端并发首聊撞唯一索引时返回已有会话而不是报错
func TestOpenConversationConflictFallsBackToExisting(t *testing.T) {
	convRepo := &fakeConversationRepo{
		conversations: map[string]*model.Conversation{},
		conflictOnce:  true,
	}
	svc := newTestService(adminUsers(), convRepo, &fakeAdminMessageRepo{})

	rsp, err := svc.OpenConversation(request.OpenConversationRequest{OwnerId: "A_alice", TargetId: "A_bob"})
	if err != nil {
		t.Fatalf("expected conflict fallback, got error: %v", err)
	}
	if rsp.ConversationId != "C_concurrent" {
		t.Fatalf("expected concurrent conversation, got %s", rsp.ConversationId)
	}
}

func TestOpenConversationRejectsSelf(t *testing.T) {
	svc := newTestService(adminUsers(), &fakeConversationRepo{conversations: map[string]*model.Conversation{}}, &fakeAdminMessageRepo{})

	_, err := svc.OpenConversation(request.OpenConversationRequest{OwnerId: "A_alice", TargetId: "A_alice"})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("expected invalid param, got %v", err)
	}
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	convRepo := &fakeConversationRepo{conversations: map[string]*model.Conversation{
		pairKey("A_alice", "A_bob"): {Uuid: "C_test", ParticipantA: "A_alice", ParticipantB: "A_bob"},
	}}
	msgRepo := &fakeAdminMessageRepo{}
	svc := newTestService(adminUsers(), convRepo, msgRepo)

	for _, content := range []string{"", "   ", "\t\n "} {
		_, err := svc.SendMessage(request.SendMessageRequest{
			ConversationId: "C_test",
			SendId:         "A_alice",
			Content:        content,
		})
		if errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Fatalf("content %q: expected invalid param, got %v", content, err)
		}
	}
	if len(msgRepo.messages) != 0 {
		t.Fatalf("blank content should not be stored, got %d messages", len(msgRepo.messages))
	}
}

func TestSendMessageUpdatesConversationSummary(t *testing.T) {
	convRepo := &fakeConversationRepo{conversations: map[string]*model.Conversation{
		pairKey("A_alice", "A_bob"): {Uuid: "C_test", ParticipantA: "A_alice", ParticipantB: "A_bob"},
	}}
	svc := newTestService(adminUsers(), convRepo, &fakeAdminMessageRepo{})

	rsp, err := svc.SendMessage(request.SendMessageRequest{
		ConversationId: "C_test",
		SendId:         "A_bob",
		Content:        "hello alice",
	})
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if rsp.SendId != "A_bob" || rsp.Content != "hello alice" {
		t.Fatalf("unexpected respond: %+v", rsp)
	}

	conv := convRepo.conversations[pairKey("A_alice", "A_bob")]
	if conv.LastMessage != "hello alice" || !conv.LastMessageAt.Valid {
		t.Fatalf("conversation summary not updated: %+v", conv)
	}
}

// 未读计数只统计对方发的未读消息；标记已读可重复调用
func TestMarkConversationReadIdempotent(t *testing.T) {
	convRepo := &fakeConversationRepo{conversations: map[string]*model.Conversation{
		pairKey("A_alice", "A_bob"): {Uuid: "C_test", ParticipantA: "A_alice", ParticipantB: "A_bob"},
	}}
	msgRepo := &fakeAdminMessageRepo{}
	svc := newTestService(adminUsers(), convRepo, msgRepo)

	for _, content := range []string{"one", "two", "three"} {
		if _, err := svc.SendMessage(request.SendMessageRequest{
			ConversationId: "C_test", SendId: "A_bob", Content: content,
		}); err != nil {
			t.Fatalf("send message: %v", err)
		}
	}

	unread, _ := msgRepo.CountUnread("C_test", "A_alice")
	if unread != 3 {
		t.Fatalf("expected 3 unread, got %d", unread)
	}
	// 发送者自己不计未读
	unread, _ = msgRepo.CountUnread("C_test", "A_bob")
	if unread != 0 {
		t.Fatalf("sender should have 0 unread, got %d", unread)
	}

	req := request.MarkConversationReadRequest{ConversationId: "C_test", ReaderId: "A_alice"}
	if err := svc.MarkConversationRead(req); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := svc.MarkConversationRead(req); err != nil {
		t.Fatalf("mark read second time: %v", err)
	}

	unread, _ = msgRepo.CountUnread("C_test", "A_alice")
	if unread != 0 {
		t.Fatalf("expected 0 unread after mark read, got %d", unread)
	}
}

func TestGetConversationListShowsOtherParticipant(t *testing.T) {
	convRepo := &fakeConversationRepo{conversations: map[string]*model.Conversation{
		pairKey("A_alice", "A_bob"): {Uuid: "C_test", ParticipantA: "A_alice", ParticipantB: "A_bob"},
	}}
	svc := newTestService(adminUsers(), convRepo, &fakeAdminMessageRepo{})

	list, err := svc.GetConversationList("A_alice")
	if err != nil {
		t.Fatalf("get conversation list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(list))
	}
	if list[0].OtherId != "A_bob" || list[0].OtherName != "Bob" {
		t.Fatalf("expected other participant Bob, got %+v", list[0])
	}
}
