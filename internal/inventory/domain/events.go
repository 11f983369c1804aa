package domain

import (
	"context"
	"time"
)

// ProductCreatedEvent 商品创建集成事件
type ProductCreatedEvent struct {
	ProductID    string    `json:"product_id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	InitialStock int64     `json:"initial_stock"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// StockMovedEvent 库存变动集成事件
type StockMovedEvent struct {
	TransactionID string       `json:"transaction_id"`
	ProductID     string       `json:"product_id"`
	Type          MovementType `json:"type"`
	Quantity      int64        `json:"quantity"`
	Stock         int64        `json:"stock"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

// EventPublisher 集成事件发布接口
// 事件在事务提交后发布，发布失败不影响已提交的业务结果
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
