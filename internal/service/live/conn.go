// Package live 实现实时更新通道
// conn.go
// 核心职责：WebSocket 连接管理
// 1. 升级 HTTP 连接为 WebSocket
// 2. Read/Write 两个 goroutine 处理指令接收和推送下发
// 3. 连接断开时通过 Broker 注销，注销后不再有任何推送
package live

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"campus_msg_server/internal/dto/request"
	"campus_msg_server/pkg/constants"
)

// UserConn 一条 WebSocket 客户端连接
type UserConn struct {
	Conn *websocket.Conn
	Uuid string
	// SendBack 推送通道，Broker 分发循环是唯一写入方
	// 注销处理后由 Broker 关闭，Write goroutine 随之退出
	SendBack chan []byte

	mu       sync.RWMutex
	tables   map[string]struct{}
	tracking bool

	closeOnce sync.Once
}

// shutdown 关闭推送通道和底层连接，幂等
// 只由 Broker 分发循环调用
func (c *UserConn) shutdown() {
	c.closeOnce.Do(func() {
		close(c.SendBack)
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Subscribe 订阅若干表的变更事件，重复订阅是幂等的
func (c *UserConn) Subscribe(tables []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, table := range tables {
		c.tables[table] = struct{}{}
	}
}

// IsSubscribed 是否订阅了某表
func (c *UserConn) IsSubscribed(table string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.tables[table]
	return ok
}

// SetTracking 标记该连接是否参与在线跟踪
// 纯观察者连接（未 track）能订阅在线快照但不出现在快照里
func (c *UserConn) SetTracking(tracking bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracking = tracking
}

// IsTracking 是否参与在线跟踪
func (c *UserConn) IsTracking() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tracking
}

// Read 读取客户端指令并提交给 Broker
// 连接出错即注销并退出
func (c *UserConn) Read(broker EventBroker) {
	zap.L().Info("ws read goroutine start", zap.String("uuid", c.Uuid))
	for {
		_, jsonMessage, err := c.Conn.ReadMessage() // 阻塞状态
		if err != nil {
			zap.L().Info("ws连接断开", zap.String("uuid", c.Uuid), zap.Error(err))
			broker.UnregisterClient(c)
			return
		}
		var cmd request.LiveCommandRequest
		if err := json.Unmarshal(jsonMessage, &cmd); err != nil {
			zap.L().Error("解析客户端指令失败", zap.String("uuid", c.Uuid), zap.Error(err))
			continue
		}
		broker.SubmitCommand(c, cmd)
	}
}

// Write 从推送通道读取消息发给客户端
// SendBack 被 Broker 关闭后退出
func (c *UserConn) Write() {
	zap.L().Info("ws write goroutine start", zap.String("uuid", c.Uuid))
	for message := range c.SendBack { // 阻塞状态
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Error("ws write error", zap.String("uuid", c.Uuid), zap.Error(err))
			return
		}
	}
}

// NewClientInit 前端建立实时连接时调用
// 升级连接、注册到 Broker 并启动读写 goroutine
func NewClientInit(c *gin.Context, clientId string, broker EventBroker) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade error", zap.Error(err))
		return
	}
	client := &UserConn{
		Conn:     conn,
		Uuid:     clientId,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
		tables:   make(map[string]struct{}),
	}
	broker.RegisterClient(client)
	go client.Read(broker)
	go client.Write()
	zap.L().Info("ws连接成功", zap.String("uuid", clientId))
}

// ClientLogout 前端显式登出时调用
// 注销后连接不会再收到任何推送
func ClientLogout(clientId string, broker EventBroker) {
	if client := broker.GetClient(clientId); client != nil {
		broker.UnregisterClient(client)
	}
}
