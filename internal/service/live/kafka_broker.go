// Package live 实现实时更新通道
// kafka_broker.go
// 核心职责：分布式模式下的事件分发实现
// 发布走 Kafka，消费循环把事件拉回本地再按单机路径路由，
// 多实例部署时每个实例都能把事件推给自己持有的连接
package live

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"
)

// KafkaBroker 分布式事件分发器
// 连接管理和路由复用 StandaloneServer，仅发布/消费路径经过 Kafka
type KafkaBroker struct {
	*StandaloneServer
	kafkaClient *KafkaClient
}

// NewKafkaBroker 创建分布式事件分发器
func NewKafkaBroker() *KafkaBroker {
	client := NewKafkaClient()
	client.KafkaInit()
	return &KafkaBroker{
		StandaloneServer: NewStandaloneServer(),
		kafkaClient:      client,
	}
}

// Publish 把事件写入 Kafka，由各实例的消费循环取回分发
func (b *KafkaBroker) Publish(event ChangeEvent) error {
	return b.kafkaClient.SendMessage(context.Background(), []byte(event.Table), event.Marshal())
}

// Start 启动消费循环和本地分发循环
func (b *KafkaBroker) Start() {
	go b.consumeLoop()
	b.StandaloneServer.Start()
}

// consumeLoop 从 Kafka 读事件并转入本地分发通道
func (b *KafkaBroker) consumeLoop() {
	for {
		message, err := b.kafkaClient.Consumer.ReadMessage(context.Background())
		if err != nil {
			if errors.Is(err, io.EOF) {
				zap.L().Info("kafka consumer closed")
				return
			}
			zap.L().Error("kafka read message error", zap.Error(err))
			continue
		}
		var event ChangeEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			zap.L().Error("unmarshal change event error", zap.Error(err))
			continue
		}
		// 本地分发沿用单机路径
		if err := b.StandaloneServer.Publish(event); err != nil {
			zap.L().Warn("本地分发事件失败", zap.String("table", event.Table), zap.Error(err))
		}
	}
}

// Close 关闭 Kafka 资源和本地分发器
func (b *KafkaBroker) Close() {
	b.kafkaClient.KafkaClose()
	b.StandaloneServer.Close()
}
