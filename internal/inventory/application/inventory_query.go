package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/inventory/internal/inventory/domain"
)

// InventoryQueryService 处理库存相关的读操作，无副作用
type InventoryQueryService struct {
	products     domain.ProductRepository
	transactions domain.TransactionRepository
}

// NewInventoryQueryService 创建查询服务
func NewInventoryQueryService(
	products domain.ProductRepository,
	transactions domain.TransactionRepository,
) *InventoryQueryService {
	return &InventoryQueryService{
		products:     products,
		transactions: transactions,
	}
}

// GetProductSummary 返回商品及其全量流水汇总
func (s *InventoryQueryService) GetProductSummary(ctx context.Context, productID string) (*ProductSummaryDTO, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	totals, err := s.transactions.SumByType(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductSummaryDTO{
		ID:             product.ID,
		Name:           product.Name,
		SKU:            product.SKU,
		CurrentStock:   product.Stock,
		TotalIncreased: totals[domain.MovementIncrease],
		TotalDecreased: totals[domain.MovementDecrease],
	}, nil
}

// ListTransactions 按创建时间倒序返回商品全部流水；
// 商品不存在时同样返回空列表而非错误
func (s *InventoryQueryService) ListTransactions(ctx context.Context, productID string) ([]*TransactionDTO, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrInvalidInput)
	}

	transactions, err := s.transactions.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*TransactionDTO, len(transactions))
	for i, t := range transactions {
		dtos[i] = toTransactionDTO(t)
	}
	return dtos, nil
}
