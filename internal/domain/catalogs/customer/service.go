package customer

import (
	"context"
	"fmt"
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/tx"
	"billdesk/internal/domain"
	"billdesk/pkg/numerator"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	*domain.CatalogService[*Customer]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Customer service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "customer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkPhoneUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, c *Customer) error {
	if c.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("CST"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		c.Code = code
	}
	return s.checkPhoneUnique(ctx, c)
}

func (s *Service) checkPhoneUnique(ctx context.Context, c *Customer) error {
	existing, err := s.repo.FindByPhone(ctx, c.Phone)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != c.ID {
		return apperror.NewDuplicate("customer", "phone", c.Phone)
	}
	return nil
}
