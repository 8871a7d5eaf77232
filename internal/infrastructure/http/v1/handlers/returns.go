package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/domain/documents/returns"
	"billdesk/internal/infrastructure/http/v1/dto"
)

// ReturnExchangeHandler handles HTTP requests for return/exchange requests.
type ReturnExchangeHandler struct {
	*BaseHandler
	service *returns.Service
}

// NewReturnExchangeHandler creates a new return/exchange handler.
func NewReturnExchangeHandler(base *BaseHandler, service *returns.Service) *ReturnExchangeHandler {
	return &ReturnExchangeHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /return-exchange - raise a request against a bill.
func (h *ReturnExchangeHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateReturnExchangeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromReturnExchange(created))
}

// Get handles GET /return-exchange/:id.
func (h *ReturnExchangeHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	requestID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	req, err := h.service.GetByID(ctx, requestID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReturnExchange(req))
}

// List handles GET /return-exchange - list with filtering and pagination.
func (h *ReturnExchangeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ReturnExchangeListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(ctx, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(result, dto.FromReturnExchange))
}

// ListPending handles GET /return-exchange/pending - the admin work queue.
func (h *ReturnExchangeHandler) ListPending(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.ReturnExchangeListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.ListPending(ctx, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(result, dto.FromReturnExchange))
}

// Respond handles POST /return-exchange/:id/respond - one-shot approve or reject.
func (h *ReturnExchangeHandler) Respond(c *gin.Context) {
	ctx := c.Request.Context()

	requestID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.RespondRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resolved, err := h.service.Respond(ctx, requestID, req.Action == "approve", req.Note)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReturnExchange(resolved))
}

// Materialize handles POST /return-exchange/:id/materialize - create the
// exchange bill from an approved request.
func (h *ReturnExchangeHandler) Materialize(c *gin.Context) {
	ctx := c.Request.Context()

	requestID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.MaterializeExchangeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	createdBy, err := id.Parse(req.CreatedBy)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid createdBy").WithDetail("value", req.CreatedBy))
		return
	}

	newBill, delta, err := h.service.MaterializeExchange(ctx, requestID, createdBy)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MaterializeExchangeResponse{
		Bill:  dto.FromBill(newBill),
		Delta: delta,
	})
}

// RegisterRoutes registers return/exchange routes.
func (h *ReturnExchangeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/pending", h.ListPending)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/respond", h.Respond)
	rg.POST("/:id/materialize", h.Materialize)
}
