package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/domain/catalogs/vendor"
	"billdesk/internal/infrastructure/http/v1/dto"
)

// VendorHandler handles HTTP requests for the Vendor catalog.
type VendorHandler struct {
	*CatalogHandler[*vendor.Vendor, dto.CreateVendorRequest, dto.UpdateVendorRequest]
	service *vendor.Service
}

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(base *BaseHandler, service *vendor.Service) *VendorHandler {
	cfg := CatalogHandlerConfig[*vendor.Vendor, dto.CreateVendorRequest, dto.UpdateVendorRequest]{
		Service:    service.CatalogService,
		EntityName: "vendor",
		MapCreateDTO: func(req dto.CreateVendorRequest) *vendor.Vendor {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateVendorRequest, existing *vendor.Vendor) *vendor.Vendor {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(v *vendor.Vendor) any {
			return dto.FromVendor(v)
		},
	}

	return &VendorHandler{
		CatalogHandler: NewCatalogHandler(base, cfg),
		service:        service,
	}
}

// Get override to include ids of items supplied by the vendor.
func (h *VendorHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	vendorID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	v, err := h.service.GetWithItems(ctx, vendorID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromVendor(v))
}
