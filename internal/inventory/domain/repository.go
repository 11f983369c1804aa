package domain

import "context"

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// Create 持久化新商品，SKU 冲突时返回 ErrDuplicateSKU
	Create(ctx context.Context, product *Product) error
	// Get 根据商品 ID 获取商品，不存在时返回 ErrProductNotFound
	Get(ctx context.Context, productID string) (*Product, error)
	// IncreaseStock 原子增加库存（store 层单条 UPDATE，不做读改写），
	// 商品不存在时返回 ErrProductNotFound
	IncreaseStock(ctx context.Context, productID string, quantity int64) error
	// DecreaseStock 原子扣减库存，条件更新保证 stock >= 0：
	// 库存不足时返回 ErrInsufficientStock，商品不存在时返回 ErrProductNotFound
	DecreaseStock(ctx context.Context, productID string, quantity int64) error
	// WithTx 在单个数据库事务中执行 fn，fn 内通过 ctx 取得事务句柄；
	// fn 返回错误时整体回滚
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactionRepository 库存流水仓储接口
type TransactionRepository interface {
	// Save 保存一条流水
	Save(ctx context.Context, transaction *Transaction) error
	// ListByProduct 按创建时间倒序返回商品的全部流水；无流水时返回空切片
	ListByProduct(ctx context.Context, productID string) ([]*Transaction, error)
	// SumByType 按变动类型汇总商品全部流水的数量
	SumByType(ctx context.Context, productID string) (map[MovementType]int64, error)
}
