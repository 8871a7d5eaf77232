package dto

import (
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/domain/catalogs/item"
)

// --- Request DTOs ---

type CreateItemRequest struct {
	Name                 string      `json:"name" binding:"required"`
	Price                types.Money `json:"price" binding:"required"`
	GST                  types.Money `json:"gst"`
	Stock                int         `json:"stock" binding:"gte=0"`
	VendorID             string      `json:"vendorId" binding:"required"`
	Category             string      `json:"category,omitempty"`
	Photo                string      `json:"photo,omitempty"`
	CommissionApplicable bool        `json:"commissionApplicable"`
	CommissionRate       types.Money `json:"commissionRate"`
}

func (r *CreateItemRequest) ToEntity() *item.Item {
	vendorID, _ := id.Parse(r.VendorID)

	it := item.NewItem(r.Name, r.Price, r.GST, r.Stock, vendorID)
	if r.Category != "" {
		it.Category = r.Category
	}
	it.Photo = r.Photo
	it.CommissionApplicable = r.CommissionApplicable
	it.CommissionRate = r.CommissionRate

	return it
}

type UpdateItemRequest struct {
	Name                 *string      `json:"name,omitempty"`
	Price                *types.Money `json:"price,omitempty"`
	GST                  *types.Money `json:"gst,omitempty"`
	Stock                *int         `json:"stock,omitempty"`
	VendorID             *string      `json:"vendorId,omitempty"`
	Category             *string      `json:"category,omitempty"`
	Photo                *string      `json:"photo,omitempty"`
	CommissionApplicable *bool        `json:"commissionApplicable,omitempty"`
	CommissionRate       *types.Money `json:"commissionRate,omitempty"`
	Version              int          `json:"version" binding:"required,min=1"`
}

func (r *UpdateItemRequest) ApplyTo(it *item.Item) {
	if r.Name != nil {
		it.Name = *r.Name
	}
	if r.Price != nil {
		it.Price = *r.Price
	}
	if r.GST != nil {
		it.GST = *r.GST
	}
	if r.Stock != nil {
		it.Stock = *r.Stock
	}
	if r.VendorID != nil {
		vendorID, _ := id.Parse(*r.VendorID)
		it.VendorID = vendorID
	}
	if r.Category != nil {
		it.Category = *r.Category
	}
	if r.Photo != nil {
		it.Photo = *r.Photo
	}
	if r.CommissionApplicable != nil {
		it.CommissionApplicable = *r.CommissionApplicable
	}
	if r.CommissionRate != nil {
		it.CommissionRate = *r.CommissionRate
	}
	it.Version = r.Version
}

type ItemListQuery struct {
	ListQuery
	Category   string `form:"category"`
	VendorID   string `form:"vendorId"`
	StockBelow *int   `form:"stockBelow" binding:"omitempty,gt=0"`
}

func (q *ItemListQuery) ToFilter() item.ListFilter {
	f := item.ListFilter{
		ListFilter: q.ListQuery.ToFilter(),
		Category:   q.Category,
		StockBelow: q.StockBelow,
	}
	if q.VendorID != "" {
		if vendorID, err := id.Parse(q.VendorID); err == nil {
			f.VendorID = &vendorID
		}
	}
	return f
}

// --- Response DTOs ---

type ItemResponse struct {
	ID                   string      `json:"id"`
	Code                 string      `json:"code"`
	Name                 string      `json:"name"`
	Price                types.Money `json:"price"`
	GST                  types.Money `json:"gst"`
	Stock                int         `json:"stock"`
	VendorID             string      `json:"vendorId"`
	Category             string      `json:"category"`
	Photo                string      `json:"photo,omitempty"`
	CommissionApplicable bool        `json:"commissionApplicable"`
	CommissionRate       types.Money `json:"commissionRate"`
	DeletionMark         bool        `json:"deletionMark,omitempty"`
	Version              int         `json:"version"`
}

func FromItem(it *item.Item) *ItemResponse {
	return &ItemResponse{
		ID:                   it.ID.String(),
		Code:                 it.Code,
		Name:                 it.Name,
		Price:                it.Price,
		GST:                  it.GST,
		Stock:                it.Stock,
		VendorID:             it.VendorID.String(),
		Category:             it.Category,
		Photo:                it.Photo,
		CommissionApplicable: it.CommissionApplicable,
		CommissionRate:       it.CommissionRate,
		DeletionMark:         it.DeletionMark,
		Version:              it.Version,
	}
}
