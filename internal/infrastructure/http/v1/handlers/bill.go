package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/domain/documents/bill"
	"billdesk/internal/infrastructure/http/v1/dto"
)

// BillHandler handles HTTP requests for Bill documents.
type BillHandler struct {
	*BaseHandler
	service *bill.Service
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(base *BaseHandler, service *bill.Service) *BillHandler {
	return &BillHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /bills - create a bill with stock decrement.
func (h *BillHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	b, err := h.service.Create(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromBill(b))
}

// Get handles GET /bills/:id - bill with lines and exchange history.
func (h *BillHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	b, err := h.service.GetByID(ctx, billID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBill(b))
}

// List handles GET /bills - list with filtering and pagination.
func (h *BillHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.BillListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(ctx, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(result, dto.FromBill))
}

// UpdateStatus handles PATCH /bills/:id/status - toggle paid/pending.
func (h *BillHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateBillStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateStatus(ctx, billID, bill.Status(req.Status)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}

// Delete handles DELETE /bills/:id - soft delete, optionally restocking items.
func (h *BillHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, billID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers bill routes.
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.DELETE("/:id", h.Delete)
}
