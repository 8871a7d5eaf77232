package bill

import (
	"context"
	"fmt"
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/core/tx"
	"billdesk/internal/core/types"
	"billdesk/internal/domain"
	"billdesk/internal/domain/catalogs/item"
	"billdesk/pkg/logger"
	"billdesk/pkg/numerator"
)

// ItemCatalog is the slice of the item repository the bill engine needs.
type ItemCatalog interface {
	GetByID(ctx context.Context, itemID id.ID) (*item.Item, error)
	DecrementStock(ctx context.Context, itemID id.ID, qty int) error
	IncrementStock(ctx context.Context, itemID id.ID, qty int) error
}

// PartyDirectory verifies that referenced parties exist.
type PartyDirectory interface {
	CustomerExists(ctx context.Context, customerID id.ID) (bool, error)
	AgentExists(ctx context.Context, agentID id.ID) (bool, error)
	EmployeeExists(ctx context.Context, employeeID id.ID) (bool, error)
}

// Options tunes bill engine behavior.
type Options struct {
	// RestockOnDelete returns purchased quantities to stock when a bill is
	// deleted. Off by default: deleting a fulfilled bill voids the record,
	// not the sale.
	RestockOnDelete bool
}

// Service is the bill engine: computes bills from carts, enforces stock,
// computes commission, and persists everything atomically.
type Service struct {
	repo      Repository
	items     ItemCatalog
	parties   PartyDirectory
	numerator *numerator.Service
	txManager tx.Manager
	opts      Options
}

// NewService creates a new bill engine.
func NewService(repo Repository, items ItemCatalog, parties PartyDirectory, num *numerator.Service, txManager tx.Manager, opts Options) *Service {
	return &Service{
		repo:      repo,
		items:     items,
		parties:   parties,
		numerator: num,
		txManager: txManager,
		opts:      opts,
	}
}

// LineInput is one cart entry. Price is trusted as the sale-time snapshot;
// GST is snapshotted from the catalog.
type LineInput struct {
	ItemID   id.ID
	Quantity int
	Price    types.Money
}

// CreateInput carries everything needed to create a bill.
type CreateInput struct {
	CustomerID id.ID
	AgentID    *id.ID
	CreatedBy  id.ID
	Lines      []LineInput

	CommissionPercent *types.Money
	CommissionCap     *types.Money

	Status      Status
	PaymentMode *string
	PaidAmount  *types.Money

	// Exchange bill linkage
	ExtraAmountPaid     types.Money
	FromExchangeRequest *id.ID
}

// Create validates the cart, snapshots prices and GST, computes totals and
// commission, decrements stock, and persists the bill. Stock decrement and
// bill persistence run in one transaction; any failure rolls everything back.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Bill, error) {
	if len(in.Lines) == 0 {
		return nil, apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	if err := s.checkParties(ctx, in); err != nil {
		return nil, err
	}

	b := NewBill(in.CustomerID, in.CreatedBy)
	b.AgentID = in.AgentID
	b.ExtraAmountPaid = in.ExtraAmountPaid
	b.FromExchangeRequest = in.FromExchangeRequest

	if in.Status != "" {
		b.Status = in.Status
	}
	b.PaymentMode = in.PaymentMode
	if in.PaidAmount != nil {
		b.PaidAmount = *in.PaidAmount
	}

	// Enrich lines from the catalog and pre-check stock. The conditional
	// decrement inside the transaction is authoritative; this pass exists to
	// reject doomed carts before touching any stock.
	applicableValue := types.Zero()
	for _, li := range in.Lines {
		if li.Quantity <= 0 {
			return nil, apperror.NewValidation("quantity must be a positive integer").
				WithDetail("itemId", li.ItemID.String())
		}

		it, err := s.items.GetByID(ctx, li.ItemID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.NewNotFound("item", li.ItemID.String())
			}
			return nil, fmt.Errorf("get item: %w", err)
		}

		if it.Stock < li.Quantity {
			return nil, apperror.NewInsufficientStock(it.Name, li.Quantity, it.Stock)
		}

		b.AddLine(it.ID, it.Name, li.Quantity, li.Price, it.GST)

		if it.CommissionApplicable {
			lineValue := li.Price.
				Mul(types.GSTMultiplier(it.GST)).
				Mul(types.NewMoneyFromInt(int64(li.Quantity)))
			applicableValue = applicableValue.Add(lineValue)
		}
	}

	if in.AgentID != nil && in.CommissionPercent != nil {
		b.AgentCommission = ComputeCommission(applicableValue, *in.CommissionPercent, in.CommissionCap)
	}

	if err := b.Validate(ctx); err != nil {
		return nil, err
	}
	if err := b.NormalizePayment(); err != nil {
		return nil, err
	}

	if b.Number == "" {
		number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("BILL"), nil, time.Now())
		if err != nil {
			return nil, fmt.Errorf("generate number: %w", err)
		}
		b.Number = number
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, line := range b.Lines {
			if err := s.items.DecrementStock(ctx, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}
		if err := s.repo.Create(ctx, b); err != nil {
			return fmt.Errorf("create bill: %w", err)
		}
		if err := s.repo.SaveLines(ctx, b.ID, b.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "bill created",
		"id", b.ID,
		"number", b.Number,
		"total", b.Total,
		"commission", b.AgentCommission,
	)
	return b, nil
}

func (s *Service) checkParties(ctx context.Context, in CreateInput) error {
	ok, err := s.parties.CustomerExists(ctx, in.CustomerID)
	if err != nil {
		return fmt.Errorf("check customer: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("customer", in.CustomerID.String())
	}

	ok, err = s.parties.EmployeeExists(ctx, in.CreatedBy)
	if err != nil {
		return fmt.Errorf("check employee: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("employee", in.CreatedBy.String())
	}

	if in.AgentID != nil {
		ok, err = s.parties.AgentExists(ctx, *in.AgentID)
		if err != nil {
			return fmt.Errorf("check agent: %w", err)
		}
		if !ok {
			return apperror.NewNotFound("agent", in.AgentID.String())
		}
	}

	return nil
}

// GetByID retrieves a bill with lines and exchange history.
func (s *Service) GetByID(ctx context.Context, billID id.ID) (*Bill, error) {
	b, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	b.Lines = lines

	history, err := s.repo.GetExchangeHistory(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("get exchange history: %w", err)
	}
	b.ExchangeHistory = history

	return b, nil
}

// List retrieves bills with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.List(ctx, filter)
}

// UpdateStatus toggles a bill between paid and pending. Partial-paid is not
// reachable through this path.
func (s *Service) UpdateStatus(ctx context.Context, billID id.ID, status Status) error {
	if status != StatusPaid && status != StatusPending {
		return apperror.NewValidation("status must be paid or pending").
			WithDetail("value", string(status))
	}

	if err := s.repo.UpdateStatus(ctx, billID, status); err != nil {
		return err
	}

	logger.Info(ctx, "bill status updated", "id", billID, "status", status)
	return nil
}

// Delete removes a bill. When RestockOnDelete is enabled, purchased
// quantities are returned to stock in the same transaction.
func (s *Service) Delete(ctx context.Context, billID id.ID) error {
	b, err := s.GetByID(ctx, billID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if s.opts.RestockOnDelete {
			for _, line := range b.Lines {
				if err := s.items.IncrementStock(ctx, line.ItemID, line.Quantity); err != nil {
					return fmt.Errorf("restock item: %w", err)
				}
			}
		}
		return s.repo.Delete(ctx, billID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "bill deleted", "id", billID, "restocked", s.opts.RestockOnDelete)
	return nil
}

// RecordExchange appends swap entries to the bill's exchange history.
func (s *Service) RecordExchange(ctx context.Context, billID id.ID, entries []ExchangeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.repo.AppendExchangeHistory(ctx, billID, entries)
}
