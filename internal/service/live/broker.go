// Package live 实现实时更新通道
// broker.go
// 核心职责：定义事件代理接口
// 抽象事件分发和客户端管理，支持 Kafka 和 Channel 两种实现
package live

import (
	"campus_msg_server/internal/dto/request"
)

// EventBroker 事件代理接口
// 支持多种实现：KafkaBroker (分布式), ChannelBroker (单机)
type EventBroker interface {
	Publisher
	// RegisterClient 注册客户端连接
	RegisterClient(client *UserConn)
	// UnregisterClient 注销客户端连接
	// 注销被处理后该连接不会再收到任何推送
	UnregisterClient(client *UserConn)
	// GetClient 获取指定用户的连接
	GetClient(userId string) *UserConn
	// SubmitCommand 提交客户端指令（订阅、在线跟踪）
	// 指令在分发循环中处理，与事件投递保持有序
	SubmitCommand(client *UserConn, cmd request.LiveCommandRequest)
	// Presence 获取在线状态跟踪器
	Presence() *PresenceTracker
	// Start 启动事件分发循环
	Start()
	// Close 关闭代理资源
	Close()
}

// GlobalBroker 全局事件代理实例
// 在 main.go 中根据配置初始化为 KafkaBroker 或 ChannelBroker
var GlobalBroker EventBroker
