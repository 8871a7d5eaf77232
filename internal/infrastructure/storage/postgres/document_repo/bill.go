package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/domain"
	"billdesk/internal/domain/documents/bill"
	"billdesk/internal/infrastructure/storage/postgres"
)

const (
	billsTable           = "doc_bills"
	billLinesTable       = "doc_bill_lines"
	exchangeHistoryTable = "doc_bill_exchange_history"
)

// BillRepo implements bill.Repository.
type BillRepo struct {
	*BaseDocumentRepo[*bill.Bill]
}

// NewBillRepo creates a new bill repository.
func NewBillRepo(txManager *postgres.TxManager) *BillRepo {
	return &BillRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			billsTable,
			postgres.ExtractDBColumns[bill.Bill](),
			func() *bill.Bill { return &bill.Bill{} },
		),
	}
}

func (r *BillRepo) GetLines(ctx context.Context, billID id.ID) ([]bill.Line, error) {
	q := r.Builder().
		Select(
			"line_id", "line_no", "item_id", "name",
			"quantity", "price", "gst", "line_total", "line_gst",
		).
		From(billLinesTable).
		Where(squirrel.Eq{"bill_id": billID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []bill.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

func (r *BillRepo) SaveLines(ctx context.Context, billID id.ID, lines []bill.Line) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + billLinesTable + " WHERE bill_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, billID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(billLinesTable).
		Columns(
			"line_id", "bill_id", "line_no", "item_id", "name",
			"quantity", "price", "gst", "line_total", "line_gst",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, billID, line.LineNo, line.ItemID, line.Name,
			line.Quantity, line.Price, line.GST, line.LineTotal, line.LineGST,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

func (r *BillRepo) List(ctx context.Context, filter bill.ListFilter) (domain.ListResult[*bill.Bill], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.CreatedBy != nil {
		q = q.Where(squirrel.Eq{"created_by": *filter.CreatedBy})
	}

	if filter.AgentID != nil {
		q = q.Where(squirrel.Eq{"agent_id": *filter.AgentID})
	}

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}

	return r.ListQuery(ctx, q, filter.ListFilter)
}

func (r *BillRepo) UpdateStatus(ctx context.Context, billID id.ID, status bill.Status) error {
	q := r.Builder().
		Update(billsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": billID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update status: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("bill", billID.String())
	}

	return nil
}

func (r *BillRepo) AppendExchangeHistory(ctx context.Context, billID id.ID, entries []bill.ExchangeEntry) error {
	if len(entries) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(exchangeHistoryTable).
		Columns("bill_id", "original_item", "new_item", "date")

	for _, e := range entries {
		q = q.Values(billID, e.OriginalItem, e.NewItem, e.Date)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert history: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert exchange history: %w", err)
	}

	return nil
}

func (r *BillRepo) GetExchangeHistory(ctx context.Context, billID id.ID) ([]bill.ExchangeEntry, error) {
	q := r.Builder().
		Select("original_item", "new_item", "date").
		From(exchangeHistoryTable).
		Where(squirrel.Eq{"bill_id": billID}).
		OrderBy("date")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []bill.ExchangeEntry
	if err := pgxscan.Select(ctx, r.Querier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("get exchange history: %w", err)
	}

	return entries, nil
}
