// Package bill provides the Bill document: a persisted sales transaction
// with computed totals, GST, and agent commission.
package bill

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/entity"
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
)

// Status is the payment status of a bill.
type Status string

const (
	StatusPending     Status = "pending"
	StatusPartialPaid Status = "partial-paid"
	StatusPaid        Status = "paid"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPartialPaid, StatusPaid:
		return true
	}
	return false
}

// Bill represents a sales transaction.
type Bill struct {
	entity.Document

	// CustomerID references the billed customer
	CustomerID id.ID `db:"customer_id" json:"customerId"`

	// CreatedBy references the employee who created the bill
	CreatedBy id.ID `db:"created_by" json:"createdBy"`

	// AgentID references the optional sale agent
	AgentID *id.ID `db:"agent_id" json:"agentId,omitempty"`

	// Totals (calculated from lines, never drift after creation)
	Subtotal  types.Money `db:"subtotal" json:"subtotal"`
	GSTAmount types.Money `db:"gst_amount" json:"gstAmount"`
	Total     types.Money `db:"total" json:"total"`

	// Payment state
	Status      Status      `db:"status" json:"status"`
	PaymentMode *string     `db:"payment_mode" json:"paymentMode,omitempty"`
	PaidAmount  types.Money `db:"paid_amount" json:"paidAmount"`

	// AgentCommission is the computed commission for this bill
	AgentCommission types.Money `db:"agent_commission" json:"agentCommission"`

	// ExtraAmountPaid records the price delta owed on an exchange bill
	ExtraAmountPaid types.Money `db:"extra_amount_paid" json:"extraAmountPaid"`

	// FromExchangeRequest links back to the originating exchange request
	FromExchangeRequest *id.ID `db:"from_exchange_request" json:"fromExchangeRequest,omitempty"`

	// Table part: billed items with price/gst snapshots
	Lines []Line `db:"-" json:"lines"`

	// ExchangeHistory records item swaps applied through approved exchanges
	ExchangeHistory []ExchangeEntry `db:"-" json:"exchangeHistory,omitempty"`
}

// Line represents a billed item with values snapshotted at sale time.
// Later catalog price changes must not alter historical bills.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ItemID   id.ID  `db:"item_id" json:"itemId"`
	Name     string `db:"name" json:"name"`
	Quantity int    `db:"quantity" json:"quantity"`

	// Price and GST are snapshots from sale time
	Price types.Money `db:"price" json:"price"`
	GST   types.Money `db:"gst" json:"gst"`

	LineTotal types.Money `db:"line_total" json:"lineTotal"`
	LineGST   types.Money `db:"line_gst" json:"lineGst"`
}

// ExchangeEntry records a single original-to-new item swap.
type ExchangeEntry struct {
	OriginalItem id.ID     `db:"original_item" json:"originalItem"`
	NewItem      id.ID     `db:"new_item" json:"newItem"`
	Date         time.Time `db:"date" json:"date"`
}

// NewBill creates a new bill document.
func NewBill(customerID, createdBy id.ID) *Bill {
	return &Bill{
		Document:        entity.NewDocument(),
		CustomerID:      customerID,
		CreatedBy:       createdBy,
		Status:          StatusPending,
		Subtotal:        types.Zero(),
		GSTAmount:       types.Zero(),
		Total:           types.Zero(),
		PaidAmount:      types.Zero(),
		AgentCommission: types.Zero(),
		ExtraAmountPaid: types.Zero(),
		Lines:           make([]Line, 0),
	}
}

// AddLine adds a line with snapshotted price/gst and recalculates totals.
func (b *Bill) AddLine(itemID id.ID, name string, quantity int, price, gst types.Money) {
	lineTotal := price.Mul(decimal.NewFromInt(int64(quantity)))
	lineGST := types.Percent(lineTotal, gst)

	line := Line{
		LineID:    id.New(),
		LineNo:    len(b.Lines) + 1,
		ItemID:    itemID,
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		GST:       gst,
		LineTotal: lineTotal,
		LineGST:   lineGST,
	}

	b.Lines = append(b.Lines, line)
	b.recalculateTotals()
}

func (b *Bill) recalculateTotals() {
	b.Subtotal = types.Zero()
	b.GSTAmount = types.Zero()

	for _, line := range b.Lines {
		b.Subtotal = b.Subtotal.Add(line.LineTotal)
		b.GSTAmount = b.GSTAmount.Add(line.LineGST)
	}

	b.Total = b.Subtotal.Add(b.GSTAmount)
}

// Validate implements entity.Validatable.
func (b *Bill) Validate(ctx context.Context) error {
	if err := b.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(b.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if id.IsNil(b.CreatedBy) {
		return apperror.NewValidation("createdBy is required").
			WithDetail("field", "createdBy")
	}

	if len(b.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range b.Lines {
		if id.IsNil(line.ItemID) {
			return apperror.NewValidation("item is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be a positive integer").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Price.IsNegative() {
			return apperror.NewValidation("price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	if !b.Status.IsValid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(b.Status))
	}

	return nil
}

// NormalizePayment applies the payment rules for the bill's status:
// paid defaults paidAmount to total, partial-paid requires
// 0 < paidAmount < total, pending forces paidAmount to zero and drops
// the payment mode.
func (b *Bill) NormalizePayment() error {
	switch b.Status {
	case StatusPaid:
		if b.PaidAmount.IsZero() {
			b.PaidAmount = b.Total
		}
		if b.PaidAmount.GreaterThan(b.Total) {
			return apperror.NewInvalidPayment("paid amount cannot exceed total").
				WithDetail("paidAmount", b.PaidAmount).
				WithDetail("total", b.Total)
		}

	case StatusPartialPaid:
		if !b.PaidAmount.IsPositive() || b.PaidAmount.GreaterThanOrEqual(b.Total) {
			return apperror.NewInvalidPayment("partial payment must be between zero and total, exclusive").
				WithDetail("paidAmount", b.PaidAmount).
				WithDetail("total", b.Total)
		}

	case StatusPending:
		b.PaidAmount = types.Zero()
		b.PaymentMode = nil
	}

	return nil
}

// ComputeCommission applies the commission percentage to the GST-inclusive
// applicable value, clamping silently to cap when one is supplied.
func ComputeCommission(applicableValue, percent types.Money, cap *types.Money) types.Money {
	commission := types.Percent(applicableValue, percent)
	if cap != nil && commission.GreaterThan(*cap) {
		return *cap
	}
	return commission
}
