// Package live 实现实时更新通道
// channel_broker.go
// 核心职责：单机模式下的事件分发实现
// 1. 维护在线连接 (Channel 模式)
// 2. 按表和作用域把变更事件路由给订阅的连接
// 3. 处理订阅与在线跟踪指令
// 4. 不依赖外部消息队列，适合单实例或开发环境
package live

import (
	"sync"

	"go.uber.org/zap"

	"campus_msg_server/internal/dto/request"
	"campus_msg_server/pkg/constants"
	"campus_msg_server/pkg/errorx"
)

// clientCommand 待处理的客户端指令
type clientCommand struct {
	client *UserConn
	cmd    request.LiveCommandRequest
}

// StandaloneServer 单机事件分发器
// 所有状态变更都在 Start 的单一 goroutine 中处理，
// 因此"注销之后不再推送"由处理顺序天然保证，无需额外加锁
type StandaloneServer struct {
	// Clients 在线连接映射表，Key 为用户 uuid
	Clients sync.Map
	// Events 事件转发通道
	Events chan ChangeEvent
	// Login 连接注册通道
	Login chan *UserConn
	// Logout 连接注销通道
	Logout chan *UserConn
	// Commands 客户端指令通道
	Commands chan clientCommand

	presence *PresenceTracker

	done      chan struct{}
	closeOnce sync.Once
}

// NewStandaloneServer 创建单机事件分发器
func NewStandaloneServer() *StandaloneServer {
	return &StandaloneServer{
		Events:   make(chan ChangeEvent, constants.CHANNEL_SIZE),
		Login:    make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:   make(chan *UserConn, constants.CHANNEL_SIZE),
		Commands: make(chan clientCommand, constants.CHANNEL_SIZE),
		presence: NewPresenceTracker(),
		done:     make(chan struct{}),
	}
}

// Publish 发布变更事件
// 通道满时丢弃并报错：事件只是重新拉取的提示，不承载数据
func (s *StandaloneServer) Publish(event ChangeEvent) error {
	select {
	case s.Events <- event:
		return nil
	case <-s.done:
		return errorx.New(errorx.CodeServerBusy, "事件分发器已关闭")
	default:
		zap.L().Warn("事件通道已满，丢弃事件",
			zap.String("table", event.Table),
			zap.String("row_id", event.RowId),
		)
		return errorx.New(errorx.CodeServerBusy, "事件通道已满")
	}
}

// RegisterClient 注册客户端连接
func (s *StandaloneServer) RegisterClient(client *UserConn) {
	select {
	case s.Login <- client:
	case <-s.done:
	}
}

// UnregisterClient 注销客户端连接
func (s *StandaloneServer) UnregisterClient(client *UserConn) {
	select {
	case s.Logout <- client:
	case <-s.done:
	}
}

// GetClient 获取指定用户的连接
func (s *StandaloneServer) GetClient(userId string) *UserConn {
	if value, ok := s.Clients.Load(userId); ok {
		return value.(*UserConn)
	}
	return nil
}

// SubmitCommand 提交客户端指令
func (s *StandaloneServer) SubmitCommand(client *UserConn, cmd request.LiveCommandRequest) {
	select {
	case s.Commands <- clientCommand{client: client, cmd: cmd}:
	case <-s.done:
	}
}

// Presence 获取在线状态跟踪器
func (s *StandaloneServer) Presence() *PresenceTracker {
	return s.presence
}

// Start 启动事件分发主循环
// 处理四类事件：连接注册、连接注销、客户端指令、变更事件分发
func (s *StandaloneServer) Start() {
	for {
		select {
		case client, ok := <-s.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			// 同一用户重复连接时替换旧连接
			if old, loaded := s.Clients.Load(client.Uuid); loaded {
				oldConn := old.(*UserConn)
				zap.L().Info("用户重复连接，关闭旧连接", zap.String("uuid", client.Uuid))
				oldConn.shutdown()
			}
			s.Clients.Store(client.Uuid, client)
			zap.L().Debug("客户端已注册", zap.String("uuid", client.Uuid))

		case client, ok := <-s.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			// 只有映射表里的当前连接才参与状态清理
			// 已被替换的旧连接只需关闭自身
			if current, loaded := s.Clients.Load(client.Uuid); loaded && current == client {
				s.Clients.Delete(client.Uuid)
				if client.IsTracking() && s.presence.Untrack(client.Uuid) {
					s.broadcastPresence()
				}
				zap.L().Info("客户端已注销", zap.String("uuid", client.Uuid))
			}
			client.shutdown()

		case command, ok := <-s.Commands:
			if !ok {
				return
			}
			s.handleCommand(command)

		case event, ok := <-s.Events:
			if !ok {
				return
			}
			s.dispatch(event)

		case <-s.done:
			s.shutdownClients()
			return
		}
	}
}

// shutdownClients 断开所有连接
// 只在分发循环内调用：SendBack 的关闭和 push 在同一 goroutine 串行执行
func (s *StandaloneServer) shutdownClients() {
	s.Clients.Range(func(key, value any) bool {
		s.Clients.Delete(key)
		value.(*UserConn).shutdown()
		return true
	})
}

// handleCommand 处理客户端指令
func (s *StandaloneServer) handleCommand(command clientCommand) {
	client := command.client
	// 注销后到达的滞留指令直接丢弃
	if current, loaded := s.Clients.Load(client.Uuid); !loaded || current != client {
		return
	}

	switch command.cmd.Command {
	case "subscribe":
		client.Subscribe(command.cmd.Tables)
		// 订阅在线状态的连接立刻收到一次全量快照
		for _, table := range command.cmd.Tables {
			if table == TablePresence {
				s.push(client, NewPresencePush(s.presence.Snapshot()))
				break
			}
		}
	case "track":
		client.SetTracking(true)
		if s.presence.Track(client.Uuid, command.cmd.Name, command.cmd.UserType) {
			s.broadcastPresence()
		}
	case "untrack":
		client.SetTracking(false)
		if s.presence.Untrack(client.Uuid) {
			s.broadcastPresence()
		}
	default:
		zap.L().Warn("未知的客户端指令",
			zap.String("uuid", client.Uuid),
			zap.String("command", command.cmd.Command),
		)
	}
}

// dispatch 把变更事件投递给订阅的连接
// Scope 非空时只投递给对应用户，为空时投递给所有订阅该表的连接
func (s *StandaloneServer) dispatch(event ChangeEvent) {
	payload := NewChangePush(event)
	if event.Scope != "" {
		if client := s.GetClient(event.Scope); client != nil && client.IsSubscribed(event.Table) {
			s.push(client, payload)
		}
		return
	}
	s.Clients.Range(func(_, value any) bool {
		client := value.(*UserConn)
		if client.IsSubscribed(event.Table) {
			s.push(client, payload)
		}
		return true
	})
}

// broadcastPresence 向所有订阅者广播在线全量快照
func (s *StandaloneServer) broadcastPresence() {
	payload := NewPresencePush(s.presence.Snapshot())
	s.Clients.Range(func(_, value any) bool {
		client := value.(*UserConn)
		if client.IsSubscribed(TablePresence) {
			s.push(client, payload)
		}
		return true
	})
}

// push 非阻塞投递，慢客户端丢弃而不拖住分发循环
func (s *StandaloneServer) push(client *UserConn, payload []byte) {
	select {
	case client.SendBack <- payload:
	default:
		zap.L().Warn("推送通道已满，丢弃推送", zap.String("uuid", client.Uuid))
	}
}

// Close 关闭分发器
// 只发出关闭信号，连接的断开由 Start 的分发循环完成，
// 避免在分发循环向 SendBack 推送的同时从别的 goroutine 关闭它
func (s *StandaloneServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
