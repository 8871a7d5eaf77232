// Package reports provides read-side aggregates computed in the database.
package reports

import (
	"context"
	"fmt"
	"time"

	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/domain/catalogs/agent"
)

// DashboardStats is the admin dashboard headline block.
type DashboardStats struct {
	Customers    int64       `db:"customers" json:"customers"`
	Employees    int64       `db:"employees" json:"employees"`
	Bills        int64       `db:"bills" json:"bills"`
	PendingBills int64       `db:"pending_bills" json:"pendingBills"`
	TotalSales   types.Money `db:"total_sales" json:"totalSales"`
}

// SalesPoint is one bucket of a sales-over-time series.
type SalesPoint struct {
	Period time.Time   `db:"period" json:"period"`
	Bills  int64       `db:"bills" json:"bills"`
	Sales  types.Money `db:"sales" json:"sales"`
}

// Repository computes aggregates with SQL, never by scanning documents
// into memory.
type Repository interface {
	DashboardStats(ctx context.Context) (DashboardStats, error)
	AgentSummary(ctx context.Context, agentID id.ID) (agent.Summary, error)
	SalesByDay(ctx context.Context, from, to time.Time) ([]SalesPoint, error)
}

// Service is a thin read-side facade over the report repository.
type Service struct {
	repo Repository
}

// NewService creates a new report service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Dashboard returns the admin dashboard aggregates.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}

// AgentSummary returns bill count and accumulated commission for one agent.
func (s *Service) AgentSummary(ctx context.Context, agentID id.ID) (agent.Summary, error) {
	return s.repo.AgentSummary(ctx, agentID)
}

// SalesByDay returns a daily sales series for the given window. An empty
// window defaults to the last 30 days.
func (s *Service) SalesByDay(ctx context.Context, from, to time.Time) ([]SalesPoint, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return s.repo.SalesByDay(ctx, from, to)
}
