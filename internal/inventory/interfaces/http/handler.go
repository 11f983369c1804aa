// Package http 库存服务的 HTTP 处理器
package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/inventory/internal/inventory/application"
	"github.com/wyfcoding/inventory/internal/inventory/domain"
	"github.com/wyfcoding/inventory/pkg/logger"
)

// InventoryHandler HTTP 处理器
type InventoryHandler struct {
	app *application.InventoryService
}

// NewInventoryHandler 创建 HTTP 处理器
func NewInventoryHandler(app *application.InventoryService) *InventoryHandler {
	return &InventoryHandler{app: app}
}

// RegisterRoutes 注册路由
func (h *InventoryHandler) RegisterRoutes(router *gin.Engine) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.POST("/:id/increase", h.IncreaseStock)
		products.POST("/:id/decrease", h.DecreaseStock)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/transactions", h.ListTransactions)
	}
}

// createProductRequest 创建商品请求
// initialStock 使用指针以区分缺失与 0：0 为合法初始库存
type createProductRequest struct {
	Name         string `json:"name" binding:"required"`
	SKU          string `json:"sku" binding:"required"`
	InitialStock *int64 `json:"initialStock" binding:"required"`
}

// adjustStockRequest 库存调整请求
// quantity 兼容数字与数字字符串两种形式
type adjustStockRequest struct {
	Quantity any `json:"quantity"`
}

// CreateProduct 创建商品
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	product, err := h.app.CreateProduct(c.Request.Context(), application.CreateProductCommand{
		Name:         req.Name,
		SKU:          req.SKU,
		InitialStock: *req.InitialStock,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// IncreaseStock 增加库存
func (h *InventoryHandler) IncreaseStock(c *gin.Context) {
	h.adjustStock(c, h.app.InventoryCommandService.IncreaseStock)
}

// DecreaseStock 扣减库存
func (h *InventoryHandler) DecreaseStock(c *gin.Context) {
	h.adjustStock(c, h.app.InventoryCommandService.DecreaseStock)
}

// adjustStock 校验通过后才触达存储层，增减共用同一套边界检查
func (h *InventoryHandler) adjustStock(
	c *gin.Context,
	move func(ctx context.Context, cmd application.AdjustStockCommand) (*application.ProductDTO, error),
) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID is required"})
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be a positive number"})
		return
	}

	quantity, ok := parseQuantity(req.Quantity)
	if !ok || quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity must be a positive number"})
		return
	}

	product, err := move(c.Request.Context(), application.AdjustStockCommand{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetProduct 获取商品汇总
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID is required"})
		return
	}

	summary, err := h.app.GetProductSummary(c.Request.Context(), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListTransactions 获取商品流水
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Product ID is required"})
		return
	}

	transactions, err := h.app.ListTransactions(c.Request.Context(), productID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// respondError 将领域错误映射为 HTTP 状态码；未识别错误一律 500 且不泄露内部细节
func (h *InventoryHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient stock"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
	case errors.Is(err, domain.ErrDuplicateSKU):
		c.JSON(http.StatusConflict, gin.H{"message": "SKU must be unique"})
	default:
		logger.Error(c.Request.Context(), "unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// parseQuantity 解析请求中的数量：接受整数或十进制整数字符串
func parseQuantity(v any) (int64, bool) {
	switch q := v.(type) {
	case float64:
		if q != math.Trunc(q) {
			return 0, false
		}
		return int64(q), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(q), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
