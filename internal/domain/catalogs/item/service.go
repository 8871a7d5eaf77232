package item

import (
	"context"
	"fmt"
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/core/tx"
	"billdesk/internal/domain"
	"billdesk/pkg/numerator"
)

// VendorChecker verifies vendor existence without importing the vendor package.
type VendorChecker interface {
	Exists(ctx context.Context, vendorID id.ID) (bool, error)
}

// Service provides business logic for the Item catalog.
type Service struct {
	*domain.CatalogService[*Item]
	repo      Repository
	vendors   VendorChecker
	numerator *numerator.Service
}

// NewService creates a new Item service.
func NewService(repo Repository, vendors VendorChecker, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "item",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		vendors:        vendors,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate handles code generation, vendor existence, and name uniqueness.
func (s *Service) prepareForCreate(ctx context.Context, it *Item) error {
	if it.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("ITM"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		it.Code = code
	}

	ok, err := s.vendors.Exists(ctx, it.VendorID)
	if err != nil {
		return fmt.Errorf("check vendor: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("vendor", it.VendorID.String())
	}

	return s.checkNameUnique(ctx, it)
}

// prepareForUpdate re-validates vendor and name uniqueness.
func (s *Service) prepareForUpdate(ctx context.Context, it *Item) error {
	ok, err := s.vendors.Exists(ctx, it.VendorID)
	if err != nil {
		return fmt.Errorf("check vendor: %w", err)
	}
	if !ok {
		return apperror.NewNotFound("vendor", it.VendorID.String())
	}

	return s.checkNameUnique(ctx, it)
}

func (s *Service) checkNameUnique(ctx context.Context, it *Item) error {
	existing, err := s.repo.FindByName(ctx, it.Name)
	if err != nil {
		// Not found means the name is free.
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != it.ID {
		return apperror.NewDuplicate("item", "name", it.Name)
	}
	return nil
}

// Search retrieves up to limit items matching the query (exchange item picker).
func (s *Service) Search(ctx context.Context, query string, limit int) ([]*Item, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.repo.Search(ctx, query, limit)
}

// ListItems retrieves items with category/vendor/stock filtering.
func (s *Service) ListItems(ctx context.Context, filter ListFilter) (domain.ListResult[*Item], error) {
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultListFilter().Limit
	}
	return s.repo.ListItems(ctx, filter)
}

// LowStockThreshold is the reorder alert level for the low-stock listing.
const LowStockThreshold = 10

// LowStock retrieves items running out, lowest stock first.
func (s *Service) LowStock(ctx context.Context) (domain.ListResult[*Item], error) {
	threshold := LowStockThreshold
	filter := ListFilter{
		ListFilter: domain.DefaultListFilter(),
		StockBelow: &threshold,
	}
	filter.OrderBy = "stock"
	return s.repo.ListItems(ctx, filter)
}
