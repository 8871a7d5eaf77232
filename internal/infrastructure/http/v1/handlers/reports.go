package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billdesk/internal/domain/reports"
	"billdesk/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles read-side report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Dashboard handles GET /dashboard - headline counters and total sales.
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.service.Dashboard(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// SalesSeries handles GET /dashboard/sales - daily sales over a window.
func (h *ReportsHandler) SalesSeries(c *gin.Context) {
	ctx := c.Request.Context()

	var q dto.SalesSeriesQuery
	if !h.BindQuery(c, &q) {
		return
	}

	from, to, err := q.Window()
	if err != nil {
		h.Error(c, err)
		return
	}

	points, err := h.service.SalesByDay(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SalesSeriesResponse{Points: points})
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Dashboard)
	rg.GET("/sales", h.SalesSeries)
}
