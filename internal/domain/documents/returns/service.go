package returns

import (
	"context"
	"fmt"
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/domain"
	"billdesk/internal/domain/catalogs/item"
	"billdesk/internal/domain/documents/bill"
	"billdesk/pkg/logger"
	"billdesk/pkg/numerator"
)

// BillEngine is the slice of the bill service the request workflow needs.
type BillEngine interface {
	GetByID(ctx context.Context, billID id.ID) (*bill.Bill, error)
	Create(ctx context.Context, in bill.CreateInput) (*bill.Bill, error)
	RecordExchange(ctx context.Context, billID id.ID, entries []bill.ExchangeEntry) error
}

// ItemPricer provides current catalog prices for exchange valuation.
type ItemPricer interface {
	GetByID(ctx context.Context, itemID id.ID) (*item.Item, error)
}

// Service implements the return and exchange request workflow.
type Service struct {
	repo      Repository
	bills     BillEngine
	items     ItemPricer
	numerator *numerator.Service
}

// NewService creates a new request workflow service.
func NewService(repo Repository, bills BillEngine, items ItemPricer, num *numerator.Service) *Service {
	return &Service{
		repo:      repo,
		bills:     bills,
		items:     items,
		numerator: num,
	}
}

// CreateInput carries a new return or exchange request.
type CreateInput struct {
	Type          Type
	BillID        id.ID
	CreatedBy     id.ID
	OriginalItems []RequestItem
	ExchangeItems []RequestItem
	Comment       string
}

// Create validates the request against the referenced bill and persists it
// in the pending state. Original items must be a subset of the bill's lines,
// with quantities not exceeding what was billed.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Request, error) {
	b, err := s.bills.GetByID(ctx, in.BillID)
	if err != nil {
		return nil, err
	}

	billed := make(map[id.ID]int, len(b.Lines))
	for _, line := range b.Lines {
		billed[line.ItemID] += line.Quantity
	}
	for _, oi := range in.OriginalItems {
		qty, ok := billed[oi.ItemID]
		if !ok {
			return nil, apperror.NewInvalidRequestState("item was not part of the bill").
				WithDetail("itemId", oi.ItemID.String()).
				WithDetail("billId", in.BillID.String())
		}
		if oi.Quantity > qty {
			return nil, apperror.NewInvalidRequestState("quantity exceeds billed quantity").
				WithDetail("itemId", oi.ItemID.String()).
				WithDetail("requested", oi.Quantity).
				WithDetail("billed", qty)
		}
	}

	req := NewRequest(in.Type, in.BillID, b.CustomerID, in.CreatedBy)
	req.OriginalItems = in.OriginalItems
	req.ExchangeItems = in.ExchangeItems
	req.Comment = in.Comment

	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("RET"), nil, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate number: %w", err)
	}
	req.Number = number

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	logger.Info(ctx, "return-exchange request created",
		"id", req.ID,
		"number", req.Number,
		"type", req.Type,
		"billId", req.BillID,
	)
	return req, nil
}

// GetByID retrieves a single request.
func (s *Service) GetByID(ctx context.Context, requestID id.ID) (*Request, error) {
	return s.repo.GetByID(ctx, requestID)
}

// List retrieves requests with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Request], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}

// ListPending retrieves unresolved requests.
func (s *Service) ListPending(ctx context.Context, filter ListFilter) (domain.ListResult[*Request], error) {
	pending := StatusPending
	filter.Status = &pending
	return s.List(ctx, filter)
}

// Respond resolves a pending request exactly once. A second response, or a
// response racing another, fails with an already-resolved error regardless
// of outcome.
func (s *Service) Respond(ctx context.Context, requestID id.ID, approve bool, note string) (*Request, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	status := StatusRejected
	if approve {
		status = StatusApproved
	}

	response := AdminResponse{
		Note:         note,
		ResponseDate: time.Now().UTC(),
	}

	ok, err := s.repo.ResolveIfPending(ctx, requestID, status, response)
	if err != nil {
		return nil, fmt.Errorf("resolve request: %w", err)
	}
	if !ok {
		return nil, apperror.NewAlreadyResolved(requestID.String())
	}

	req.Status = status
	req.Response = &response

	logger.Info(ctx, "request resolved", "id", requestID, "status", status)
	return req, nil
}

// MaterializeExchange turns an approved exchange request into a new bill.
// The new bill carries the exchange items at current catalog prices; the
// price delta against the returned items is recorded as ExtraAmountPaid
// when the customer owes, or reported as a refund when negative.
func (s *Service) MaterializeExchange(ctx context.Context, requestID, createdBy id.ID) (*bill.Bill, types.Money, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, types.Zero(), err
	}

	if req.Type != TypeExchange {
		return nil, types.Zero(), apperror.NewNotExchangeType(requestID.String())
	}
	if req.Status != StatusApproved {
		return nil, types.Zero(), apperror.NewRequestNotApproved(requestID.String(), string(req.Status))
	}
	if req.ExchangeBillID != nil {
		return nil, types.Zero(), apperror.NewInvalidRequestState("exchange already materialized").
			WithDetail("requestId", requestID.String()).
			WithDetail("billId", req.ExchangeBillID.String())
	}

	originalValue, err := s.valueAtCurrentPrices(ctx, req.OriginalItems)
	if err != nil {
		return nil, types.Zero(), err
	}

	exchangeValue := types.Zero()
	lines := make([]bill.LineInput, 0, len(req.ExchangeItems))
	for _, ei := range req.ExchangeItems {
		it, err := s.items.GetByID(ctx, ei.ItemID)
		if err != nil {
			return nil, types.Zero(), err
		}
		value := it.Price.Mul(types.NewMoneyFromInt(int64(ei.Quantity)))
		exchangeValue = exchangeValue.Add(value)
		lines = append(lines, bill.LineInput{
			ItemID:   ei.ItemID,
			Quantity: ei.Quantity,
			Price:    it.Price,
		})
	}

	// Positive delta: customer owes the difference. Negative: refund due.
	delta := exchangeValue.Sub(originalValue)
	extra := delta
	if extra.IsNegative() {
		extra = types.Zero()
	}

	reqID := req.ID
	newBill, err := s.bills.Create(ctx, bill.CreateInput{
		CustomerID:          req.CustomerID,
		CreatedBy:           createdBy,
		Lines:               lines,
		Status:              bill.StatusPending,
		ExtraAmountPaid:     extra,
		FromExchangeRequest: &reqID,
	})
	if err != nil {
		return nil, types.Zero(), err
	}

	linked, err := s.repo.SetExchangeBill(ctx, req.ID, newBill.ID)
	if err != nil {
		return nil, types.Zero(), fmt.Errorf("link exchange bill: %w", err)
	}
	if !linked {
		return nil, types.Zero(), apperror.NewInvalidRequestState("exchange already materialized").
			WithDetail("requestId", requestID.String())
	}

	entries := pairSwaps(req.OriginalItems, req.ExchangeItems)
	if err := s.bills.RecordExchange(ctx, req.BillID, entries); err != nil {
		return nil, types.Zero(), fmt.Errorf("record exchange history: %w", err)
	}

	logger.Info(ctx, "exchange materialized",
		"requestId", req.ID,
		"billId", newBill.ID,
		"delta", delta,
	)
	return newBill, delta, nil
}

func (s *Service) valueAtCurrentPrices(ctx context.Context, items []RequestItem) (types.Money, error) {
	total := types.Zero()
	for _, ri := range items {
		it, err := s.items.GetByID(ctx, ri.ItemID)
		if err != nil {
			return types.Zero(), err
		}
		total = total.Add(it.Price.Mul(types.NewMoneyFromInt(int64(ri.Quantity))))
	}
	return total, nil
}

// pairSwaps matches original and exchange items position-wise for the
// history trail. Unmatched tails are dropped from the pairing.
func pairSwaps(original, exchange []RequestItem) []bill.ExchangeEntry {
	n := len(original)
	if len(exchange) < n {
		n = len(exchange)
	}
	entries := make([]bill.ExchangeEntry, 0, n)
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		entries = append(entries, bill.ExchangeEntry{
			OriginalItem: original[i].ItemID,
			NewItem:      exchange[i].ItemID,
			Date:         now,
		})
	}
	return entries
}
