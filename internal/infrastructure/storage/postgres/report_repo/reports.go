// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/domain/catalogs/agent"
	"billdesk/internal/domain/reports"
	"billdesk/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository. All aggregates are computed in
// SQL; bill documents are never scanned into memory.
type ReportRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Admin accounts are not counted as employees on the dashboard.
const dashboardStatsQuery = `
	SELECT
		(SELECT COUNT(*) FROM cat_customers WHERE deletion_mark = false) AS customers,
		(SELECT COUNT(*) FROM cat_employees WHERE deletion_mark = false AND role = 'employee') AS employees,
		(SELECT COUNT(*) FROM doc_bills WHERE deletion_mark = false) AS bills,
		(SELECT COUNT(*) FROM doc_bills WHERE deletion_mark = false AND status = 'pending') AS pending_bills,
		(SELECT COALESCE(SUM(total), 0) FROM doc_bills WHERE deletion_mark = false) AS total_sales
`

// DashboardStats computes the admin dashboard aggregates in one round trip.
func (r *ReportRepo) DashboardStats(ctx context.Context) (reports.DashboardStats, error) {
	var stats reports.DashboardStats

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &stats, dashboardStatsQuery); err != nil {
		return stats, fmt.Errorf("dashboard stats: %w", err)
	}

	return stats, nil
}

// AgentSummary aggregates bill count and commission for one agent.
func (r *ReportRepo) AgentSummary(ctx context.Context, agentID id.ID) (agent.Summary, error) {
	summary := agent.Summary{TotalCommission: types.Zero()}

	query := `
		SELECT
			COUNT(*) AS total_bills,
			COALESCE(SUM(agent_commission), 0) AS total_commission
		FROM doc_bills
		WHERE deletion_mark = false AND agent_id = $1
	`

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &summary, query, agentID); err != nil {
		return summary, fmt.Errorf("agent summary: %w", err)
	}

	return summary, nil
}

// SalesByDay buckets bills by calendar day over the window.
func (r *ReportRepo) SalesByDay(ctx context.Context, from, to time.Time) ([]reports.SalesPoint, error) {
	query := `
		SELECT
			date_trunc('day', date) AS period,
			COUNT(*) AS bills,
			COALESCE(SUM(total), 0) AS sales
		FROM doc_bills
		WHERE deletion_mark = false AND date >= $1 AND date <= $2
		GROUP BY period
		ORDER BY period
	`

	var points []reports.SalesPoint
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &points, query, from, to); err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}

	return points, nil
}
