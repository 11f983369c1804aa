// Package messaging 库存集成事件的 Kafka 发布实现
package messaging

import (
	"context"

	"github.com/wyfcoding/inventory/internal/inventory/domain"
	"github.com/wyfcoding/inventory/pkg/mq"
)

// kafkaEventPublisher 基于 Kafka 的事件发布者实现
type kafkaEventPublisher struct {
	producer *mq.KafkaProducer
}

// NewKafkaEventPublisher 创建一个新的 Kafka 事件发布者
func NewKafkaEventPublisher(producer *mq.KafkaProducer) domain.EventPublisher {
	return &kafkaEventPublisher{producer: producer}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.producer.SendMessage(ctx, topic, key, event)
}

// nopEventPublisher 空实现，Kafka 未启用时使用
type nopEventPublisher struct{}

// NewNopEventPublisher 创建一个丢弃所有事件的发布者
func NewNopEventPublisher() domain.EventPublisher {
	return nopEventPublisher{}
}

func (nopEventPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return nil
}
