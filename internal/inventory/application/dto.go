package application

import (
	"time"

	"github.com/wyfcoding/inventory/internal/inventory/domain"
)

// ProductDTO 商品响应对象
type ProductDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Stock     int64     `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransactionDTO 库存流水响应对象
type TransactionDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductSummaryDTO 商品汇总响应对象
// currentStock 恒等于 initialStock + totalIncreased - totalDecreased
type ProductSummaryDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
	CurrentStock   int64  `json:"currentStock"`
	TotalIncreased int64  `json:"totalIncreased"`
	TotalDecreased int64  `json:"totalDecreased"`
}

func toProductDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toTransactionDTO(t *domain.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:        t.ID,
		ProductID: t.ProductID,
		Type:      string(t.Type),
		Quantity:  t.Quantity,
		CreatedAt: t.CreatedAt,
	}
}
