package agent

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

// Summarizer computes derived agent figures from persisted bills.
// Implemented by the reports repository.
type Summarizer interface {
	AgentSummary(ctx context.Context, agentID id.ID) (Summary, error)
}

// Service provides business logic for the Agent catalog.
type Service struct {
	*domain.CatalogService[*Agent]
	repo      Repository
	summary   Summarizer
	numerator *numerator.Service
}

// NewService creates a new Agent service.
func NewService(repo Repository, summary Summarizer, num *numerator.Service, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Agent]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "agent",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		summary:        summary,
		numerator:      num,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.checkContactsUnique)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, a *Agent) error {
	if a.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("AGT"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		a.Code = code
	}
	return s.checkContactsUnique(ctx, a)
}

func (s *Service) checkContactsUnique(ctx context.Context, a *Agent) error {
	if a.Phone != nil && *a.Phone != "" {
		existing, err := s.repo.FindByPhone(ctx, *a.Phone)
		if err == nil && existing.ID != a.ID {
			return apperror.NewDuplicate("agent", "phone", *a.Phone)
		}
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
	}

	if a.Email != nil && *a.Email != "" {
		existing, err := s.repo.FindByEmail(ctx, *a.Email)
		if err == nil && existing.ID != a.ID {
			return apperror.NewDuplicate("agent", "email", *a.Email)
		}
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
	}

	return nil
}

// GetWithSummary retrieves an agent with derived totals.
func (s *Service) GetWithSummary(ctx context.Context, agentID id.ID) (*WithSummary, error) {
	a, err := s.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	sum, err := s.summary.AgentSummary(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("agent summary: %w", err)
	}

	return &WithSummary{Agent: a, Summary: sum}, nil
}

// ListWithSummary lists agents, each enriched with derived totals.
func (s *Service) ListWithSummary(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*WithSummary], error) {
	result, err := s.List(ctx, filter)
	if err != nil {
		return domain.ListResult[*WithSummary]{}, err
	}

	out := domain.ListResult[*WithSummary]{
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
		Items:      make([]*WithSummary, 0, len(result.Items)),
	}

	for _, a := range result.Items {
		sum, err := s.summary.AgentSummary(ctx, a.ID)
		if err != nil {
			return out, fmt.Errorf("agent summary: %w", err)
		}
		out.Items = append(out.Items, &WithSummary{Agent: a, Summary: sum})
	}

	return out, nil
}
