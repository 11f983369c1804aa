// Package application 库存服务的应用层，聚合命令与查询服务
package application

// InventoryService 聚合读写服务，作为接口层的统一入口
type InventoryService struct {
	*InventoryCommandService
	*InventoryQueryService
}

// NewInventoryService 创建库存应用服务
func NewInventoryService(command *InventoryCommandService, query *InventoryQueryService) *InventoryService {
	return &InventoryService{
		InventoryCommandService: command,
		InventoryQueryService:   query,
	}
}
