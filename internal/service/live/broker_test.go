package live

import (
	"encoding/json"
	"testing"
	"time"

	"campus_msg_server/internal/dto/request"
	"campus_msg_server/pkg/constants"
	"campus_msg_server/pkg/enum/user/user_type_enum"
)

// newTestConn 构造不带底层 WebSocket 的连接，只用于分发逻辑测试
func newTestConn(uuid string) *UserConn {
	return &UserConn{
		Uuid:     uuid,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
		tables:   make(map[string]struct{}),
	}
}

func startTestServer(t *testing.T) *StandaloneServer {
	t.Helper()
	s := NewStandaloneServer()
	go s.Start()
	t.Cleanup(s.Close)
	return s
}

// waitUntil 轮询等待异步状态生效
func waitUntil(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

// receivePush 读取一条推送，超时视为失败
func receivePush(t *testing.T, client *UserConn) PushEnvelope {
	t.Helper()
	select {
	case payload, ok := <-client.SendBack:
		if !ok {
			t.Fatal("push channel closed unexpectedly")
		}
		var envelope PushEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			t.Fatalf("unmarshal push: %v", err)
		}
		return envelope
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for push")
	}
	return PushEnvelope{}
}

// expectNoPush 短窗口内不应有任何推送
func expectNoPush(t *testing.T, client *UserConn) {
	t.Helper()
	select {
	case payload, ok := <-client.SendBack:
		if ok {
			t.Fatalf("unexpected push: %s", payload)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

// register 注册连接并等待其进入映射表
func register(t *testing.T, s *StandaloneServer, client *UserConn) {
	t.Helper()
	s.RegisterClient(client)
	waitUntil(t, func() bool { return s.GetClient(client.Uuid) == client }, "client not registered")
}

// subscribe 提交订阅指令并等待生效
func subscribe(t *testing.T, s *StandaloneServer, client *UserConn, tables ...string) {
	t.Helper()
	s.SubmitCommand(client, request.LiveCommandRequest{Command: "subscribe", Tables: tables})
	waitUntil(t, func() bool {
		for _, table := range tables {
			if !client.IsSubscribed(table) {
				return false
			}
		}
		return true
	}, "subscription not applied")
}

// ==================== 事件分发 ====================

// 定向事件只投递给作用域内且订阅了该表的连接
func TestDispatchScopedEvent(t *testing.T) {
	s := startTestServer(t)

	alice := newTestConn("A_alice")
	bob := newTestConn("A_bob")
	register(t, s, alice)
	register(t, s, bob)
	subscribe(t, s, alice, TableDirectedMessage)
	subscribe(t, s, bob, TableDirectedMessage)

	if err := s.Publish(NewInsertEvent(TableDirectedMessage, "42", "A_alice")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	envelope := receivePush(t, alice)
	if envelope.Kind != "change" || envelope.Event == nil {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	if envelope.Event.Table != TableDirectedMessage || envelope.Event.RowId != "42" {
		t.Fatalf("unexpected event: %+v", envelope.Event)
	}
	expectNoPush(t, bob)
}

// 作用域为空的事件广播给所有订阅该表的连接，未订阅的不收
func TestDispatchBroadcastEvent(t *testing.T) {
	s := startTestServer(t)

	admin1 := newTestConn("A_admin1")
	admin2 := newTestConn("A_admin2")
	teacher := newTestConn("T_teacher")
	register(t, s, admin1)
	register(t, s, admin2)
	register(t, s, teacher)
	subscribe(t, s, admin1, TableDirectedMessage)
	subscribe(t, s, admin2, TableDirectedMessage)
	subscribe(t, s, teacher, TableNotice)

	if err := s.Publish(NewInsertEvent(TableDirectedMessage, "7", "")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, client := range []*UserConn{admin1, admin2} {
		envelope := receivePush(t, client)
		if envelope.Event == nil || envelope.Event.RowId != "7" {
			t.Fatalf("client %s: unexpected envelope %+v", client.Uuid, envelope)
		}
	}
	expectNoPush(t, teacher)
}

// 未订阅任何表的连接不会收到事件
func TestDispatchRequiresSubscription(t *testing.T) {
	s := startTestServer(t)

	alice := newTestConn("A_alice")
	register(t, s, alice)

	if err := s.Publish(NewInsertEvent(TableNotice, "1", "A_alice")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	expectNoPush(t, alice)
}

// ==================== 连接生命周期 ====================

// 注销处理完成后推送通道被关闭，之后的事件不会再投递
func TestUnregisterStopsPushes(t *testing.T) {
	s := startTestServer(t)

	alice := newTestConn("A_alice")
	register(t, s, alice)
	subscribe(t, s, alice, TableNotice)

	s.UnregisterClient(alice)
	waitUntil(t, func() bool { return s.GetClient("A_alice") == nil }, "client not unregistered")

	if err := s.Publish(NewInsertEvent(TableNotice, "9", "A_alice")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	// 通道已关闭且为空：注销之后没有任何推送到达过
	select {
	case payload, ok := <-alice.SendBack:
		if ok {
			t.Fatalf("push after unregister: %s", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("push channel not closed after unregister")
	}
}

// 同一用户重复连接时旧连接被替换并关闭，推送只走新连接
func TestDuplicateLoginReplacesOldConn(t *testing.T) {
	s := startTestServer(t)

	old := newTestConn("A_alice")
	register(t, s, old)

	replacement := newTestConn("A_alice")
	s.RegisterClient(replacement)
	waitUntil(t, func() bool { return s.GetClient("A_alice") == replacement }, "replacement not registered")

	// 旧连接的推送通道已被关闭
	select {
	case _, ok := <-old.SendBack:
		if ok {
			t.Fatal("old conn should not receive pushes")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("old conn not shut down")
	}

	subscribe(t, s, replacement, TableNotice)
	if err := s.Publish(NewInsertEvent(TableNotice, "3", "A_alice")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	envelope := receivePush(t, replacement)
	if envelope.Event == nil || envelope.Event.RowId != "3" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}

	// 被替换的旧连接注销时不能误删新连接
	s.UnregisterClient(old)
	time.Sleep(20 * time.Millisecond)
	if s.GetClient("A_alice") != replacement {
		t.Fatal("stale logout must not remove the replacement conn")
	}
}

// ==================== 在线状态 ====================

// 订阅在线状态的连接立刻收到一次全量快照
func TestSubscribePresencePushesSnapshot(t *testing.T) {
	s := startTestServer(t)

	observer := newTestConn("A_observer")
	register(t, s, observer)
	subscribe(t, s, observer, TablePresence)

	envelope := receivePush(t, observer)
	if envelope.Kind != "presence" || envelope.Presence == nil {
		t.Fatalf("expected presence snapshot, got %+v", envelope)
	}
	if envelope.Presence.Total != 0 {
		t.Fatalf("expected empty snapshot, got %+v", envelope.Presence)
	}
}

// track/untrack 触发向订阅者广播新快照；纯观察者不出现在快照里
func TestTrackBroadcastsSnapshotToObservers(t *testing.T) {
	s := startTestServer(t)

	observer := newTestConn("A_observer")
	register(t, s, observer)
	subscribe(t, s, observer, TablePresence)
	receivePush(t, observer) // 订阅时的初始快照

	tracked := newTestConn("T_teacher")
	register(t, s, tracked)
	s.SubmitCommand(tracked, request.LiveCommandRequest{
		Command:  "track",
		Name:     "张老师",
		UserType: user_type_enum.Teacher,
	})

	envelope := receivePush(t, observer)
	if envelope.Presence == nil || envelope.Presence.Total != 1 {
		t.Fatalf("expected 1 online, got %+v", envelope.Presence)
	}
	// 快照条目携带宣告的身份，不只是 uuid
	entry := envelope.Presence.Online[0]
	if entry.Uuid != "T_teacher" || entry.Name != "张老师" || entry.UserType != user_type_enum.Teacher {
		t.Fatalf("unexpected snapshot entry: %+v", entry)
	}
	if entry.Timestamp == "" {
		t.Fatal("snapshot entry should carry the announce time")
	}
	// 观察者自己没有 track，不在快照里
	if s.Presence().IsOnline("A_observer") {
		t.Fatal("observer-only conn must not appear in presence")
	}

	s.SubmitCommand(tracked, request.LiveCommandRequest{Command: "untrack"})
	envelope = receivePush(t, observer)
	if envelope.Presence == nil || envelope.Presence.Total != 0 {
		t.Fatalf("expected empty snapshot after untrack, got %+v", envelope.Presence)
	}
}

// 参与跟踪的连接断开时自动离线并广播
func TestDisconnectUntracksUser(t *testing.T) {
	s := startTestServer(t)

	observer := newTestConn("A_observer")
	register(t, s, observer)
	subscribe(t, s, observer, TablePresence)
	receivePush(t, observer)

	tracked := newTestConn("T_teacher")
	register(t, s, tracked)
	s.SubmitCommand(tracked, request.LiveCommandRequest{
		Command:  "track",
		Name:     "张老师",
		UserType: user_type_enum.Teacher,
	})
	receivePush(t, observer) // 上线快照

	s.UnregisterClient(tracked)
	envelope := receivePush(t, observer)
	if envelope.Presence == nil || envelope.Presence.Total != 0 {
		t.Fatalf("expected empty snapshot after disconnect, got %+v", envelope.Presence)
	}
}

// ==================== 关闭 ====================

// 关闭时连接由分发循环断开，与进行中的推送并发执行也不会 panic
func TestCloseShutsDownClientsInDispatchLoop(t *testing.T) {
	s := NewStandaloneServer()
	go s.Start()

	alice := newTestConn("A_alice")
	register(t, s, alice)
	subscribe(t, s, alice, TableNotice)

	published := make(chan struct{})
	go func() {
		defer close(published)
		for i := 0; i < 1000; i++ {
			_ = s.Publish(NewInsertEvent(TableNotice, "1", ""))
		}
	}()
	s.Close()
	<-published

	// 分发循环退出前断开所有连接，通道最终被关闭
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-alice.SendBack:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("client not shut down after close")
		}
	}
}
