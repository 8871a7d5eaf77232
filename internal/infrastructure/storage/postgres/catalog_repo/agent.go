package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"billdesk/internal/core/apperror"
	"billdesk/internal/domain/catalogs/agent"
	"billdesk/internal/infrastructure/storage/postgres"
)

const agentTable = "cat_agents"

// AgentRepo implements agent.Repository.
type AgentRepo struct {
	*BaseCatalogRepo[*agent.Agent]
}

// NewAgentRepo creates a new agent repository.
func NewAgentRepo(txManager *postgres.TxManager) *AgentRepo {
	return &AgentRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			agentTable,
			postgres.ExtractDBColumns[agent.Agent](),
			func() *agent.Agent { return &agent.Agent{} },
		),
	}
}

// FindByPhone retrieves an agent by phone.
func (r *AgentRepo) FindByPhone(ctx context.Context, phone string) (*agent.Agent, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"phone": phone}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	a, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("agent", phone)
		}
		return nil, err
	}
	return a, nil
}

// FindByEmail retrieves an agent by email.
func (r *AgentRepo) FindByEmail(ctx context.Context, email string) (*agent.Agent, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	a, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("agent", email)
		}
		return nil, err
	}
	return a, nil
}
