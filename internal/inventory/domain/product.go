// Package domain 库存服务的领域模型
package domain

import (
	"errors"
	"time"
)

var (
	// ErrInvalidInput 输入不合法（空名称、空 SKU、非法数量等）
	ErrInvalidInput = errors.New("invalid input")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateSKU SKU 已存在
	ErrDuplicateSKU = errors.New("sku must be unique")
	// ErrInsufficientStock 库存不足，扣减被拒绝
	ErrInsufficientStock = errors.New("insufficient stock")
)

// MovementType 库存变动类型
type MovementType string

const (
	// MovementIncrease 入库
	MovementIncrease MovementType = "INCREASE"
	// MovementDecrease 出库
	MovementDecrease MovementType = "DECREASE"
)

// Valid 判断变动类型是否合法
func (t MovementType) Valid() bool {
	return t == MovementIncrease || t == MovementDecrease
}

// Product 商品实体
// 库存字段只能通过 increase/decrease 操作变更，且始终满足 stock >= 0
type Product struct {
	// 商品 ID（业务主键），全局唯一
	ID string
	// 商品名称
	Name string
	// SKU，全局唯一
	SKU string
	// 当前库存
	Stock int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction 库存变动流水
// 每次库存变动恰好产生一条流水，与库存更新在同一事务内提交，创建后不可变
type Transaction struct {
	// 流水 ID（业务主键），全局唯一
	ID string
	// 所属商品 ID
	ProductID string
	// 变动类型
	Type MovementType
	// 变动数量，恒为正数
	Quantity int64
	// 创建时间，写入后不再变更
	CreatedAt time.Time
}
