package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/inventory/internal/inventory/domain"
	"gorm.io/gorm"
)

// txContextKey 事务句柄在 context 中的键
type txContextKey struct{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

// productRepository 商品仓储实现
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建并返回一个新的 productRepository 实例
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

// Create 持久化新商品，唯一约束冲突映射为 ErrDuplicateSKU
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	model := toProductModel(product)
	if err := r.getDB(ctx).WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateSKU
		}
		return err
	}
	product.CreatedAt = model.CreatedAt
	product.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *productRepository) Get(ctx context.Context, productID string) (*domain.Product, error) {
	var model ProductModel
	err := r.getDB(ctx).WithContext(ctx).Where("product_id = ?", productID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return toProduct(&model), nil
}

// IncreaseStock 单条 UPDATE 原子加库存，避免调用方读改写
func (r *productRepository) IncreaseStock(ctx context.Context, productID string, quantity int64) error {
	result := r.getDB(ctx).WithContext(ctx).Model(&ProductModel{}).
		Where("product_id = ?", productID).
		Updates(map[string]any{"stock": gorm.Expr("stock + ?", quantity)})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecreaseStock 条件 UPDATE 原子扣库存，stock >= quantity 作为守卫条件，
// 并发扣减下不会出现负库存
func (r *productRepository) DecreaseStock(ctx context.Context, productID string, quantity int64) error {
	result := r.getDB(ctx).WithContext(ctx).Model(&ProductModel{}).
		Where("product_id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]any{"stock": gorm.Expr("stock - ?", quantity)})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 零行命中：区分商品不存在与库存不足
		if _, err := r.Get(ctx, productID); err != nil {
			return err
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// WithTx 在单个数据库事务中执行 fn，事务句柄通过 ctx 传递给仓储方法
func (r *productRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}

// transactionRepository 库存流水仓储实现
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建并返回一个新的 transactionRepository 实例
func NewTransactionRepository(db *gorm.DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Save(ctx context.Context, transaction *domain.Transaction) error {
	model := toTransactionModel(transaction)
	if err := r.getDB(ctx).WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	transaction.CreatedAt = model.CreatedAt
	return nil
}

// ListByProduct 按创建时间倒序返回流水，同一时刻以自增主键倒序保证稳定顺序
func (r *transactionRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.Transaction, error) {
	var models []*TransactionModel
	err := r.getDB(ctx).WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	transactions := make([]*domain.Transaction, len(models))
	for i, m := range models {
		transactions[i] = toTransaction(m)
	}
	return transactions, nil
}

// SumByType 按变动类型汇总全部流水数量
func (r *transactionRepository) SumByType(ctx context.Context, productID string) (map[domain.MovementType]int64, error) {
	var rows []struct {
		Type  string
		Total int64
	}
	err := r.getDB(ctx).WithContext(ctx).Model(&TransactionModel{}).
		Select("type, COALESCE(SUM(quantity), 0) AS total").
		Where("product_id = ?", productID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[domain.MovementType]int64, len(rows))
	for _, row := range rows {
		totals[domain.MovementType(row.Type)] = row.Total
	}
	return totals, nil
}

func (r *transactionRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}
