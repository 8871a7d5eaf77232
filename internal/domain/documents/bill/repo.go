package bill

import (
	"context"
	"time"

	"billdesk/internal/core/id"
	"billdesk/internal/domain"
)

// ListFilter contains bill-specific filtering options.
type ListFilter struct {
	domain.ListFilter

	CustomerID *id.ID
	CreatedBy  *id.ID
	AgentID    *id.ID
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Repository defines the interface for Bill persistence.
type Repository interface {
	// Create inserts the bill header.
	Create(ctx context.Context, b *Bill) error

	// SaveLines replaces the bill's lines.
	SaveLines(ctx context.Context, billID id.ID, lines []Line) error

	// GetLines retrieves the bill's lines ordered by line number.
	GetLines(ctx context.Context, billID id.ID) ([]Line, error)

	// GetByID retrieves the bill header.
	GetByID(ctx context.Context, billID id.ID) (*Bill, error)

	// List retrieves bills with filtering.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error)

	// UpdateStatus sets the payment status. Returns NOT_FOUND when missing.
	UpdateStatus(ctx context.Context, billID id.ID, status Status) error

	// Delete removes the bill and its lines.
	Delete(ctx context.Context, billID id.ID) error

	// AppendExchangeHistory records item swaps applied to the bill.
	AppendExchangeHistory(ctx context.Context, billID id.ID, entries []ExchangeEntry) error

	// GetExchangeHistory retrieves recorded swaps ordered by date.
	GetExchangeHistory(ctx context.Context, billID id.ID) ([]ExchangeEntry, error)
}
