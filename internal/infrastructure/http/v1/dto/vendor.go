package dto

import (
	"billdesk/internal/domain/catalogs/vendor"
)

// --- Request DTOs ---

type CreateVendorRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (r *CreateVendorRequest) ToEntity() *vendor.Vendor {
	v := vendor.NewVendor(r.Name)
	v.Phone = r.Phone
	v.Email = r.Email
	return v
}

type UpdateVendorRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Version int     `json:"version" binding:"required,min=1"`
}

func (r *UpdateVendorRequest) ApplyTo(v *vendor.Vendor) {
	if r.Name != nil {
		v.Name = *r.Name
	}
	if r.Phone != nil {
		v.Phone = r.Phone
	}
	if r.Email != nil {
		v.Email = r.Email
	}
	v.Version = r.Version
}

// --- Response DTOs ---

type VendorResponse struct {
	ID            string   `json:"id"`
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Phone         *string  `json:"phone,omitempty"`
	Email         *string  `json:"email,omitempty"`
	SuppliedItems []string `json:"suppliedItems,omitempty"`
	DeletionMark  bool     `json:"deletionMark,omitempty"`
	Version       int      `json:"version"`
}

func FromVendor(v *vendor.Vendor) *VendorResponse {
	resp := &VendorResponse{
		ID:           v.ID.String(),
		Code:         v.Code,
		Name:         v.Name,
		Phone:        v.Phone,
		Email:        v.Email,
		DeletionMark: v.DeletionMark,
		Version:      v.Version,
	}
	if len(v.SuppliedItems) > 0 {
		resp.SuppliedItems = make([]string, len(v.SuppliedItems))
		for i, itemID := range v.SuppliedItems {
			resp.SuppliedItems[i] = itemID.String()
		}
	}
	return resp
}
