package dto

import (
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/domain/documents/returns"
)

// --- Request DTOs ---

type RequestItemDTO struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateReturnExchangeRequest struct {
	Type          string           `json:"type" binding:"required"`
	BillID        string           `json:"billId" binding:"required"`
	CreatedBy     string           `json:"createdBy" binding:"required"`
	OriginalItems []RequestItemDTO `json:"originalItems" binding:"required,min=1,dive"`
	ExchangeItems []RequestItemDTO `json:"exchangeItems,omitempty"`
	Comment       string           `json:"comment,omitempty"`
}

func (r *CreateReturnExchangeRequest) ToInput() (returns.CreateInput, error) {
	billID, err := id.Parse(r.BillID)
	if err != nil {
		return returns.CreateInput{}, apperror.NewValidation("invalid billId").
			WithDetail("value", r.BillID)
	}

	createdBy, err := id.Parse(r.CreatedBy)
	if err != nil {
		return returns.CreateInput{}, apperror.NewValidation("invalid createdBy").
			WithDetail("value", r.CreatedBy)
	}

	in := returns.CreateInput{
		Type:      returns.Type(r.Type),
		BillID:    billID,
		CreatedBy: createdBy,
		Comment:   r.Comment,
	}

	in.OriginalItems, err = toRequestItems(r.OriginalItems)
	if err != nil {
		return returns.CreateInput{}, err
	}
	in.ExchangeItems, err = toRequestItems(r.ExchangeItems)
	if err != nil {
		return returns.CreateInput{}, err
	}

	return in, nil
}

func toRequestItems(items []RequestItemDTO) ([]returns.RequestItem, error) {
	out := make([]returns.RequestItem, 0, len(items))
	for _, it := range items {
		itemID, err := id.Parse(it.ItemID)
		if err != nil {
			return nil, apperror.NewValidation("invalid itemId").
				WithDetail("value", it.ItemID)
		}
		out = append(out, returns.RequestItem{ItemID: itemID, Quantity: it.Quantity})
	}
	return out, nil
}

type RespondRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Note   string `json:"note,omitempty"`
}

type MaterializeExchangeRequest struct {
	CreatedBy string `json:"createdBy" binding:"required"`
}

type ReturnExchangeListQuery struct {
	ListQuery
	BillID     string `form:"billId"`
	CustomerID string `form:"customerId"`
	CreatedBy  string `form:"createdBy"`
	Type       string `form:"type"`
	Status     string `form:"status"`
}

func (q *ReturnExchangeListQuery) ToFilter() returns.ListFilter {
	f := returns.ListFilter{ListFilter: q.ListQuery.ToFilter()}

	if parsed, err := id.Parse(q.BillID); err == nil && q.BillID != "" {
		f.BillID = &parsed
	}
	if parsed, err := id.Parse(q.CustomerID); err == nil && q.CustomerID != "" {
		f.CustomerID = &parsed
	}
	if parsed, err := id.Parse(q.CreatedBy); err == nil && q.CreatedBy != "" {
		f.CreatedBy = &parsed
	}
	if q.Type != "" {
		t := returns.Type(q.Type)
		f.Type = &t
	}
	if q.Status != "" {
		s := returns.Status(q.Status)
		f.Status = &s
	}

	return f
}

// --- Response DTOs ---

type AdminResponseDTO struct {
	Note         string    `json:"note,omitempty"`
	ResponseDate time.Time `json:"responseDate"`
}

type RequestItemResponse struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type ReturnExchangeResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"number"`
	Date           time.Time             `json:"date"`
	Type           string                `json:"type"`
	BillID         string                `json:"billId"`
	CustomerID     string                `json:"customerId"`
	CreatedBy      string                `json:"createdBy"`
	OriginalItems  []RequestItemResponse `json:"originalItems"`
	ExchangeItems  []RequestItemResponse `json:"exchangeItems,omitempty"`
	Status         string                `json:"status"`
	AdminResponse  *AdminResponseDTO     `json:"adminResponse,omitempty"`
	ExchangeBillID *string               `json:"exchangeBillId,omitempty"`
	Comment        string                `json:"comment,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func FromReturnExchange(req *returns.Request) *ReturnExchangeResponse {
	resp := &ReturnExchangeResponse{
		ID:            req.ID.String(),
		Number:        req.Number,
		Date:          req.Date,
		Type:          string(req.Type),
		BillID:        req.BillID.String(),
		CustomerID:    req.CustomerID.String(),
		CreatedBy:     req.CreatedBy.String(),
		Status:        string(req.Status),
		Comment:       req.Comment,
		CreatedAt:     req.CreatedAt,
		UpdatedAt:     req.UpdatedAt,
		OriginalItems: fromRequestItems(req.OriginalItems),
		ExchangeItems: fromRequestItems(req.ExchangeItems),
	}

	if req.Response != nil {
		resp.AdminResponse = &AdminResponseDTO{
			Note:         req.Response.Note,
			ResponseDate: req.Response.ResponseDate,
		}
	}
	if req.ExchangeBillID != nil {
		s := req.ExchangeBillID.String()
		resp.ExchangeBillID = &s
	}

	return resp
}

func fromRequestItems(items []returns.RequestItem) []RequestItemResponse {
	out := make([]RequestItemResponse, len(items))
	for i, it := range items {
		out[i] = RequestItemResponse{ItemID: it.ItemID.String(), Quantity: it.Quantity}
	}
	return out
}

// MaterializeExchangeResponse carries the new bill and the price delta.
// A negative delta is the refund owed to the customer.
type MaterializeExchangeResponse struct {
	Bill  *BillResponse `json:"bill"`
	Delta types.Money   `json:"delta"`
}
