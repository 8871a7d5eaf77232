// Package returns provides the ReturnExchangeRequest document: a customer
// request to return or exchange items from a fulfilled bill, resolved
// exactly once by an admin.
package returns

import (
	"context"
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/entity"
	"billdesk/internal/core/id"
)

// Type discriminates return requests from exchange requests.
type Type string

const (
	TypeReturn   Type = "return"
	TypeExchange Type = "exchange"
)

// IsValid reports whether t is a known request type.
func (t Type) IsValid() bool {
	return t == TypeReturn || t == TypeExchange
}

// Status is the resolution state of a request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// RequestItem is one item reference inside a request.
type RequestItem struct {
	ItemID   id.ID `db:"item_id" json:"itemId"`
	Quantity int   `db:"quantity" json:"quantity"`
}

// AdminResponse records the one-shot resolution.
type AdminResponse struct {
	Note         string    `db:"note" json:"note,omitempty"`
	ResponseDate time.Time `db:"response_date" json:"responseDate"`
}

// Request represents a return or exchange request against a bill.
// Status transitions exactly once: pending to approved or rejected.
type Request struct {
	entity.Document

	Type Type `db:"type" json:"type"`

	// BillID references the bill the request is raised against
	BillID id.ID `db:"bill_id" json:"billId"`

	CustomerID id.ID `db:"customer_id" json:"customerId"`
	CreatedBy  id.ID `db:"created_by" json:"createdBy"`

	// OriginalItems are lines from the referenced bill being given back
	OriginalItems []RequestItem `db:"-" json:"originalItems"`

	// ExchangeItems are the replacement items (exchange type only)
	ExchangeItems []RequestItem `db:"-" json:"exchangeItems,omitempty"`

	Status Status `db:"status" json:"status"`

	// Response is set when the request is resolved
	Response *AdminResponse `db:"-" json:"adminResponse,omitempty"`

	// ExchangeBillID links the bill materialized from an approved exchange
	ExchangeBillID *id.ID `db:"exchange_bill_id" json:"exchangeBillId,omitempty"`
}

// NewRequest creates a pending request.
func NewRequest(reqType Type, billID, customerID, createdBy id.ID) *Request {
	return &Request{
		Document:   entity.NewDocument(),
		Type:       reqType,
		BillID:     billID,
		CustomerID: customerID,
		CreatedBy:  createdBy,
		Status:     StatusPending,
	}
}

// Validate implements entity.Validatable.
func (r *Request) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if !r.Type.IsValid() {
		return apperror.NewValidation("type must be return or exchange").
			WithDetail("field", "type").
			WithDetail("value", string(r.Type))
	}

	if id.IsNil(r.BillID) {
		return apperror.NewValidation("bill is required").
			WithDetail("field", "billId")
	}

	if id.IsNil(r.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if id.IsNil(r.CreatedBy) {
		return apperror.NewValidation("createdBy is required").
			WithDetail("field", "createdBy")
	}

	if len(r.OriginalItems) == 0 {
		return apperror.NewValidation("at least one original item is required").
			WithDetail("field", "originalItems")
	}

	for _, it := range append(append([]RequestItem{}, r.OriginalItems...), r.ExchangeItems...) {
		if id.IsNil(it.ItemID) {
			return apperror.NewValidation("item is required").
				WithDetail("field", "items")
		}
		if it.Quantity <= 0 {
			return apperror.NewValidation("quantity must be a positive integer").
				WithDetail("itemId", it.ItemID.String())
		}
	}

	switch r.Type {
	case TypeExchange:
		if len(r.ExchangeItems) == 0 {
			return apperror.NewInvalidRequestState("exchange requests require exchange items").
				WithDetail("field", "exchangeItems")
		}
	case TypeReturn:
		if len(r.ExchangeItems) != 0 {
			return apperror.NewInvalidRequestState("return requests must not carry exchange items").
				WithDetail("field", "exchangeItems")
		}
	}

	if !r.Status.IsValid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(r.Status))
	}

	return nil
}

// IsResolved reports whether the request left the pending state.
func (r *Request) IsResolved() bool {
	return r.Status != StatusPending
}
