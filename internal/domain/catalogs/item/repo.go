package item

import (
	"context"

	"billdesk/internal/core/id"
	"billdesk/internal/domain"
)

// ListFilter extends the common filter with item-specific criteria.
type ListFilter struct {
	domain.ListFilter

	// Category filters by exact category
	Category string

	// VendorID filters by supplying vendor
	VendorID *id.ID

	// StockBelow keeps items with stock strictly below the threshold
	StockBelow *int
}

// Repository defines the interface for Item persistence.
type Repository interface {
	domain.CatalogRepository[*Item]

	// FindByName retrieves an item by its unique name.
	FindByName(ctx context.Context, name string) (*Item, error)

	// Search retrieves up to limit items whose name matches the query.
	Search(ctx context.Context, query string, limit int) ([]*Item, error)

	// ListItems retrieves items with item-specific filtering.
	ListItems(ctx context.Context, filter ListFilter) (domain.ListResult[*Item], error)

	// DecrementStock atomically decrements stock by qty. Returns
	// INSUFFICIENT_STOCK when the conditional update matches no row
	// (available stock below qty). Must run inside the caller's transaction.
	DecrementStock(ctx context.Context, itemID id.ID, qty int) error

	// IncrementStock atomically adds qty back to stock.
	IncrementStock(ctx context.Context, itemID id.ID, qty int) error
}
