package mysql

import (
	"github.com/wyfcoding/inventory/internal/inventory/domain"
	"gorm.io/gorm"
)

// ProductModel 商品持久化对象
type ProductModel struct {
	gorm.Model
	// 商品 ID（业务主键）
	ProductID string `gorm:"column:product_id;type:varchar(64);uniqueIndex;not null"`
	Name      string `gorm:"column:name;type:varchar(255);not null"`
	SKU       string `gorm:"column:sku;type:varchar(64);uniqueIndex;not null"`
	Stock     int64  `gorm:"column:stock;not null;default:0"`
}

// TableName 指定表名
func (ProductModel) TableName() string { return "products" }

// TransactionModel 库存流水持久化对象，只插入不更新
type TransactionModel struct {
	gorm.Model
	// 流水 ID（业务主键）
	TransactionID string `gorm:"column:transaction_id;type:varchar(64);uniqueIndex;not null"`
	ProductID     string `gorm:"column:product_id;type:varchar(64);index;not null"`
	Type          string `gorm:"column:type;type:varchar(16);not null"`
	Quantity      int64  `gorm:"column:quantity;not null"`
}

// TableName 指定表名
func (TransactionModel) TableName() string { return "stock_transactions" }

func toProductModel(p *domain.Product) *ProductModel {
	return &ProductModel{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Stock:     p.Stock,
	}
}

func toProduct(m *ProductModel) *domain.Product {
	return &domain.Product{
		ID:        m.ProductID,
		Name:      m.Name,
		SKU:       m.SKU,
		Stock:     m.Stock,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTransactionModel(t *domain.Transaction) *TransactionModel {
	return &TransactionModel{
		TransactionID: t.ID,
		ProductID:     t.ProductID,
		Type:          string(t.Type),
		Quantity:      t.Quantity,
	}
}

func toTransaction(m *TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:        m.TransactionID,
		ProductID: m.ProductID,
		Type:      domain.MovementType(m.Type),
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
	}
}
