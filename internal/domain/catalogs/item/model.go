// Package item provides the Item catalog: sellable goods with stock and
// commission metadata.
package item

import (
	"context"

	"github.com/shopspring/decimal"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/entity"
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
)

// DefaultCategory is assigned when no category is supplied.
const DefaultCategory = "General"

// Item represents a sellable catalog item.
type Item struct {
	entity.Catalog

	// Price is the unit selling price
	Price types.Money `db:"price" json:"price"`

	// GST is the GST percentage applied on sale (0-100)
	GST types.Money `db:"gst" json:"gst"`

	// Stock is the available unit count, never negative
	Stock int `db:"stock" json:"stock"`

	// VendorID references the supplying vendor
	VendorID id.ID `db:"vendor_id" json:"vendorId"`

	// Category groups items for browsing
	Category string `db:"category" json:"category"`

	// Photo is the stored photo filename, empty when none was uploaded
	Photo string `db:"photo" json:"photo,omitempty"`

	// CommissionApplicable marks the item as contributing to agent commission
	CommissionApplicable bool `db:"commission_applicable" json:"commissionApplicable"`

	// CommissionRate is the item-level commission percentage
	CommissionRate types.Money `db:"commission_rate" json:"commissionRate"`
}

// NewItem creates a new Item with required fields.
func NewItem(name string, price types.Money, gst types.Money, stock int, vendorID id.ID) *Item {
	return &Item{
		Catalog:  entity.NewCatalog("", name),
		Price:    price,
		GST:      gst,
		Stock:    stock,
		VendorID: vendorID,
		Category: DefaultCategory,
	}
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}

	if i.Price.IsNegative() {
		return apperror.NewValidation("price cannot be negative").
			WithDetail("field", "price")
	}

	if i.GST.IsNegative() || i.GST.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidation("gst must be between 0 and 100").
			WithDetail("field", "gst")
	}

	if i.Stock < 0 {
		return apperror.NewValidation("stock cannot be negative").
			WithDetail("field", "stock")
	}

	if id.IsNil(i.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}

	if i.Category == "" {
		i.Category = DefaultCategory
	}

	if i.CommissionRate.IsNegative() {
		return apperror.NewValidation("commission rate cannot be negative").
			WithDetail("field", "commissionRate")
	}

	return nil
}

// GSTInclusivePrice returns price * (1 + gst/100).
func (i *Item) GSTInclusivePrice() types.Money {
	return i.Price.Mul(types.GSTMultiplier(i.GST))
}
