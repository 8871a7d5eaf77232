package employee

import (
	"context"

	"billdesk/internal/domain"
)

// Repository defines the interface for Employee persistence.
type Repository interface {
	domain.CatalogRepository[*Employee]

	// FindByEmail retrieves an employee by the unique email.
	FindByEmail(ctx context.Context, email string) (*Employee, error)
}
