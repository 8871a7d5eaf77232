package dto

import (
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/domain/documents/bill"
)

// --- Request DTOs ---

type BillLineRequest struct {
	ItemID   string      `json:"itemId" binding:"required"`
	Quantity int         `json:"quantity" binding:"required,gt=0"`
	Price    types.Money `json:"price" binding:"required"`
}

type CreateBillRequest struct {
	CustomerID        string            `json:"customerId" binding:"required"`
	CreatedBy         string            `json:"createdBy" binding:"required"`
	AgentID           *string           `json:"agentId,omitempty"`
	Lines             []BillLineRequest `json:"items" binding:"required,min=1,dive"`
	CommissionPercent *types.Money      `json:"commissionPercent,omitempty"`
	CommissionCap     *types.Money      `json:"commissionCap,omitempty"`
	Status            string            `json:"status,omitempty"`
	PaymentMode       *string           `json:"paymentMode,omitempty"`
	PaidAmount        *types.Money      `json:"paidAmount,omitempty"`
}

func (r *CreateBillRequest) ToInput() (bill.CreateInput, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return bill.CreateInput{}, apperror.NewValidation("invalid customerId").
			WithDetail("value", r.CustomerID)
	}

	createdBy, err := id.Parse(r.CreatedBy)
	if err != nil {
		return bill.CreateInput{}, apperror.NewValidation("invalid createdBy").
			WithDetail("value", r.CreatedBy)
	}

	in := bill.CreateInput{
		CustomerID:        customerID,
		CreatedBy:         createdBy,
		CommissionPercent: r.CommissionPercent,
		CommissionCap:     r.CommissionCap,
		Status:            bill.Status(r.Status),
		PaymentMode:       r.PaymentMode,
		PaidAmount:        r.PaidAmount,
		ExtraAmountPaid:   types.Zero(),
	}

	if r.AgentID != nil && *r.AgentID != "" {
		agentID, err := id.Parse(*r.AgentID)
		if err != nil {
			return bill.CreateInput{}, apperror.NewValidation("invalid agentId").
				WithDetail("value", *r.AgentID)
		}
		in.AgentID = &agentID
	}

	in.Lines = make([]bill.LineInput, 0, len(r.Lines))
	for _, line := range r.Lines {
		itemID, err := id.Parse(line.ItemID)
		if err != nil {
			return bill.CreateInput{}, apperror.NewValidation("invalid itemId").
				WithDetail("value", line.ItemID)
		}
		in.Lines = append(in.Lines, bill.LineInput{
			ItemID:   itemID,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}

	return in, nil
}

type UpdateBillStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BillListQuery struct {
	ListQuery
	CustomerID string `form:"customerId"`
	CreatedBy  string `form:"createdBy"`
	AgentID    string `form:"agentId"`
	Status     string `form:"status"`
	DateFrom   string `form:"dateFrom" time_format:"2006-01-02"`
	DateTo     string `form:"dateTo" time_format:"2006-01-02"`
}

func (q *BillListQuery) ToFilter() bill.ListFilter {
	f := bill.ListFilter{ListFilter: q.ListQuery.ToFilter()}
	f.OrderBy = ""
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}

	if parsed, err := id.Parse(q.CustomerID); err == nil && q.CustomerID != "" {
		f.CustomerID = &parsed
	}
	if parsed, err := id.Parse(q.CreatedBy); err == nil && q.CreatedBy != "" {
		f.CreatedBy = &parsed
	}
	if parsed, err := id.Parse(q.AgentID); err == nil && q.AgentID != "" {
		f.AgentID = &parsed
	}
	if q.Status != "" {
		status := bill.Status(q.Status)
		f.Status = &status
	}
	if t, err := time.Parse("2006-01-02", q.DateFrom); err == nil {
		f.DateFrom = &t
	}
	if t, err := time.Parse("2006-01-02", q.DateTo); err == nil {
		f.DateTo = &t
	}

	return f
}

// --- Response DTOs ---

type BillLineResponse struct {
	LineID    string      `json:"lineId"`
	LineNo    int         `json:"lineNo"`
	ItemID    string      `json:"itemId"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     types.Money `json:"price"`
	GST       types.Money `json:"gst"`
	LineTotal types.Money `json:"lineTotal"`
	LineGST   types.Money `json:"lineGst"`
}

type ExchangeEntryResponse struct {
	OriginalItem string    `json:"originalItem"`
	NewItem      string    `json:"newItem"`
	Date         time.Time `json:"date"`
}

type BillResponse struct {
	ID                  string                  `json:"id"`
	Number              string                  `json:"number"`
	Date                time.Time               `json:"date"`
	CustomerID          string                  `json:"customerId"`
	CreatedBy           string                  `json:"createdBy"`
	AgentID             *string                 `json:"agentId,omitempty"`
	Subtotal            types.Money             `json:"subtotal"`
	GSTAmount           types.Money             `json:"gstAmount"`
	Total               types.Money             `json:"total"`
	Status              string                  `json:"status"`
	PaymentMode         *string                 `json:"paymentMode,omitempty"`
	PaidAmount          types.Money             `json:"paidAmount"`
	AgentCommission     types.Money             `json:"agentCommission"`
	ExtraAmountPaid     types.Money             `json:"extraAmountPaid"`
	FromExchangeRequest *string                 `json:"fromExchangeRequest,omitempty"`
	Lines               []BillLineResponse      `json:"items,omitempty"`
	ExchangeHistory     []ExchangeEntryResponse `json:"exchangeHistory,omitempty"`
	DeletionMark        bool                    `json:"deletionMark,omitempty"`
	CreatedAt           time.Time               `json:"createdAt"`
	UpdatedAt           time.Time               `json:"updatedAt"`
}

func FromBill(b *bill.Bill) *BillResponse {
	resp := &BillResponse{
		ID:              b.ID.String(),
		Number:          b.Number,
		Date:            b.Date,
		CustomerID:      b.CustomerID.String(),
		CreatedBy:       b.CreatedBy.String(),
		Subtotal:        b.Subtotal,
		GSTAmount:       b.GSTAmount,
		Total:           b.Total,
		Status:          string(b.Status),
		PaymentMode:     b.PaymentMode,
		PaidAmount:      b.PaidAmount,
		AgentCommission: b.AgentCommission,
		ExtraAmountPaid: b.ExtraAmountPaid,
		DeletionMark:    b.DeletionMark,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.AgentID != nil {
		s := b.AgentID.String()
		resp.AgentID = &s
	}
	if b.FromExchangeRequest != nil {
		s := b.FromExchangeRequest.String()
		resp.FromExchangeRequest = &s
	}

	resp.Lines = make([]BillLineResponse, len(b.Lines))
	for i, line := range b.Lines {
		resp.Lines[i] = BillLineResponse{
			LineID:    line.LineID.String(),
			LineNo:    line.LineNo,
			ItemID:    line.ItemID.String(),
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
			GST:       line.GST,
			LineTotal: line.LineTotal,
			LineGST:   line.LineGST,
		}
	}

	if len(b.ExchangeHistory) > 0 {
		resp.ExchangeHistory = make([]ExchangeEntryResponse, len(b.ExchangeHistory))
		for i, e := range b.ExchangeHistory {
			resp.ExchangeHistory[i] = ExchangeEntryResponse{
				OriginalItem: e.OriginalItem.String(),
				NewItem:      e.NewItem.String(),
				Date:         e.Date,
			}
		}
	}

	return resp
}
