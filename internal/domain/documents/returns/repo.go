package returns

import (
	"context"
	"time"

	"billdesk/internal/core/id"
	"billdesk/internal/domain"
)

// ListFilter extends the common filter with request-specific predicates.
type ListFilter struct {
	domain.ListFilter

	BillID     *id.ID
	CustomerID *id.ID
	CreatedBy  *id.ID
	Type       *Type
	Status     *Status
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Repository defines persistence for return and exchange requests.
// Implementations persist OriginalItems and ExchangeItems alongside
// the request and load them back on reads.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, requestID id.ID) (*Request, error)
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Request], error)

	// ResolveIfPending flips the request out of pending with a conditional
	// update. Returns false when the request was already resolved.
	ResolveIfPending(ctx context.Context, requestID id.ID, status Status, response AdminResponse) (bool, error)

	// SetExchangeBill links the materialized exchange bill with a conditional
	// update. Returns false when another bill is already linked.
	SetExchangeBill(ctx context.Context, requestID, billID id.ID) (bool, error)
}
