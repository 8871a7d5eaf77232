package customer

import (
	"context"

	"billdesk/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByPhone retrieves a customer by the unique phone number.
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
}
