package agent

import (
	"context"

	"billdesk/internal/domain"
)

// Repository defines the interface for Agent persistence.
type Repository interface {
	domain.CatalogRepository[*Agent]

	// FindByPhone retrieves an agent by phone.
	FindByPhone(ctx context.Context, phone string) (*Agent, error)

	// FindByEmail retrieves an agent by email.
	FindByEmail(ctx context.Context, email string) (*Agent, error)
}
