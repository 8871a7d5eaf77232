package employee

import (
	"context"
	"fmt"
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/tx"
	"billdesk/internal/domain"
	"billdesk/pkg/numerator"
)

// Service provides business logic for the Employee catalog.
type Service struct {
	*domain.CatalogService[*Employee]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Employee service.
func NewService(repo Repository, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Employee]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "employee",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkEmailUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, e *Employee) error {
	if e.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("EMP"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		e.Code = code
	}
	return s.checkEmailUnique(ctx, e)
}

func (s *Service) checkEmailUnique(ctx context.Context, e *Employee) error {
	existing, err := s.repo.FindByEmail(ctx, e.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != e.ID {
		return apperror.NewDuplicate("employee", "email", e.Email)
	}
	return nil
}
