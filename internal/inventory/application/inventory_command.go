package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wyfcoding/inventory/internal/inventory/domain"
	"github.com/wyfcoding/inventory/pkg/logger"
	"github.com/wyfcoding/inventory/pkg/metrics"
)

// 集成事件主题
const (
	topicProductCreated = "inventory.product.created"
	topicStockMoved     = "inventory.stock.movement"
)

// CreateProductCommand 创建商品命令
type CreateProductCommand struct {
	Name         string
	SKU          string
	InitialStock int64
}

// AdjustStockCommand 库存调整命令
type AdjustStockCommand struct {
	ProductID string
	Quantity  int64
}

// InventoryCommandService 处理库存相关的写操作
type InventoryCommandService struct {
	products     domain.ProductRepository
	transactions domain.TransactionRepository
	publisher    domain.EventPublisher
	metrics      *metrics.Metrics
}

// NewInventoryCommandService 创建命令服务
func NewInventoryCommandService(
	products domain.ProductRepository,
	transactions domain.TransactionRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *InventoryCommandService {
	return &InventoryCommandService{
		products:     products,
		transactions: transactions,
		publisher:    publisher,
		metrics:      m,
	}
}

// CreateProduct 创建商品，initialStock 允许为 0
func (s *InventoryCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (*ProductDTO, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(cmd.SKU) == "" {
		return nil, fmt.Errorf("%w: sku is required", domain.ErrInvalidInput)
	}
	if cmd.InitialStock < 0 {
		return nil, fmt.Errorf("%w: initialStock must not be negative", domain.ErrInvalidInput)
	}

	product := &domain.Product{
		ID:    newProductID(),
		Name:  cmd.Name,
		SKU:   cmd.SKU,
		Stock: cmd.InitialStock,
	}

	if err := s.products.Create(ctx, product); err != nil {
		logger.Error(ctx, "failed to create product", "sku", cmd.SKU, "error", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ProductsCreatedTotal.Inc()
	}

	s.publish(ctx, topicProductCreated, product.ID, domain.ProductCreatedEvent{
		ProductID:    product.ID,
		Name:         product.Name,
		SKU:          product.SKU,
		InitialStock: product.Stock,
		OccurredAt:   time.Now(),
	})

	return toProductDTO(product), nil
}

// IncreaseStock 增加库存：库存更新与流水插入在同一事务内提交
func (s *InventoryCommandService) IncreaseStock(ctx context.Context, cmd AdjustStockCommand) (*ProductDTO, error) {
	return s.moveStock(ctx, cmd, domain.MovementIncrease)
}

// DecreaseStock 扣减库存：条件更新保证库存不为负，失败时整体回滚
func (s *InventoryCommandService) DecreaseStock(ctx context.Context, cmd AdjustStockCommand) (*ProductDTO, error) {
	return s.moveStock(ctx, cmd, domain.MovementDecrease)
}

func (s *InventoryCommandService) moveStock(ctx context.Context, cmd AdjustStockCommand, movementType domain.MovementType) (*ProductDTO, error) {
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}
	if cmd.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive number", domain.ErrInvalidInput)
	}

	var updated *domain.Product
	transaction := &domain.Transaction{
		ID:        newTransactionID(),
		ProductID: cmd.ProductID,
		Type:      movementType,
		Quantity:  cmd.Quantity,
	}

	err := s.products.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		if movementType == domain.MovementIncrease {
			err = s.products.IncreaseStock(txCtx, cmd.ProductID, cmd.Quantity)
		} else {
			err = s.products.DecreaseStock(txCtx, cmd.ProductID, cmd.Quantity)
		}
		if err != nil {
			return err
		}

		if err := s.transactions.Save(txCtx, transaction); err != nil {
			return err
		}

		updated, err = s.products.Get(txCtx, cmd.ProductID)
		return err
	})
	if err != nil {
		logger.Error(ctx, "failed to move stock",
			"product_id", cmd.ProductID,
			"type", movementType,
			"quantity", cmd.Quantity,
			"error", err,
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordStockMovement(string(movementType))
	}

	s.publish(ctx, topicStockMoved, cmd.ProductID, domain.StockMovedEvent{
		TransactionID: transaction.ID,
		ProductID:     cmd.ProductID,
		Type:          movementType,
		Quantity:      cmd.Quantity,
		Stock:         updated.Stock,
		OccurredAt:    time.Now(),
	})

	return toProductDTO(updated), nil
}

// publish 事务提交后发布集成事件，失败只记日志
func (s *InventoryCommandService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "failed to publish integration event", "topic", topic, "key", key, "error", err)
	}
}

func newProductID() string {
	return fmt.Sprintf("PRD-%s", uuid.NewString())
}

func newTransactionID() string {
	return fmt.Sprintf("TXN-%s", uuid.NewString())
}
