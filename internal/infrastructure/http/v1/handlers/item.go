package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billdesk/internal/domain/catalogs/item"
	"billdesk/internal/infrastructure/http/v1/dto"
)

// ItemHandler handles HTTP requests for the Item catalog.
type ItemHandler struct {
	*CatalogHandler[*item.Item, dto.CreateItemRequest, dto.UpdateItemRequest]
	service *item.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	cfg := CatalogHandlerConfig[*item.Item, dto.CreateItemRequest, dto.UpdateItemRequest]{
		Service:    service.CatalogService,
		EntityName: "item",
		MapCreateDTO: func(req dto.CreateItemRequest) *item.Item {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateItemRequest, existing *item.Item) *item.Item {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(it *item.Item) any {
			return dto.FromItem(it)
		},
	}

	return &ItemHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
	}
}

// List override to support category and vendor filtering.
func (h *ItemHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ItemListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.ListItems(ctx, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(result, dto.FromItem))
}

// Search handles GET /items/search - quick item lookup by name or code.
func (h *ItemHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	query := c.Query("q")
	limit := h.ParseIntQuery(c, "limit", 10)

	items, err := h.service.Search(ctx, query, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]*dto.ItemResponse, len(items))
	for i, it := range items {
		dtos[i] = dto.FromItem(it)
	}

	c.JSON(http.StatusOK, gin.H{"items": dtos})
}

// LowStock handles GET /items/stock/low - items below the reorder level.
func (h *ItemHandler) LowStock(c *gin.Context) {
	result, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(result, dto.FromItem))
}
