package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billdesk/internal/core/id"
	"billdesk/internal/domain"
	"billdesk/internal/domain/documents/returns"
	"billdesk/internal/infrastructure/storage/postgres"
)

const (
	requestsTable          = "doc_return_exchange_requests"
	requestItemsTable      = "doc_return_exchange_items"
	requestsTableResponses = "doc_return_exchange_responses"
)

// Item kinds in the request items table part.
const (
	requestItemKindOriginal = "original"
	requestItemKindExchange = "exchange"
)

// ReturnExchangeRepo implements returns.Repository.
type ReturnExchangeRepo struct {
	*BaseDocumentRepo[*returns.Request]
}

// NewReturnExchangeRepo creates a new return-exchange request repository.
func NewReturnExchangeRepo(txManager *postgres.TxManager) *ReturnExchangeRepo {
	return &ReturnExchangeRepo{
		BaseDocumentRepo: NewBaseDocumentRepo(
			txManager,
			requestsTable,
			postgres.ExtractDBColumns[returns.Request](),
			func() *returns.Request { return &returns.Request{} },
		),
	}
}

// Create persists the request and both item lists in one transaction scope.
func (r *ReturnExchangeRepo) Create(ctx context.Context, req *returns.Request) error {
	if err := r.BaseDocumentRepo.Create(ctx, req); err != nil {
		return err
	}
	return r.saveItems(ctx, req)
}

func (r *ReturnExchangeRepo) saveItems(ctx context.Context, req *returns.Request) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + requestItemsTable + " WHERE request_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, req.ID); err != nil {
		return fmt.Errorf("delete existing request items: %w", err)
	}

	if len(req.OriginalItems)+len(req.ExchangeItems) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(requestItemsTable).
		Columns("request_id", "kind", "line_no", "item_id", "quantity")

	for i, it := range req.OriginalItems {
		q = q.Values(req.ID, requestItemKindOriginal, i+1, it.ItemID, it.Quantity)
	}
	for i, it := range req.ExchangeItems {
		q = q.Values(req.ID, requestItemKindExchange, i+1, it.ItemID, it.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert request items: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert request items: %w", err)
	}

	return nil
}

// GetByID loads the request with both item lists and the admin response.
func (r *ReturnExchangeRepo) GetByID(ctx context.Context, requestID id.ID) (*returns.Request, error) {
	req, err := r.BaseDocumentRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, req); err != nil {
		return nil, err
	}
	if err := r.loadResponse(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

func (r *ReturnExchangeRepo) loadItems(ctx context.Context, req *returns.Request) error {
	q := r.Builder().
		Select("kind", "item_id", "quantity").
		From(requestItemsTable).
		Where(squirrel.Eq{"request_id": req.ID}).
		OrderBy("kind", "line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	var rows []struct {
		Kind     string `db:"kind"`
		ItemID   id.ID  `db:"item_id"`
		Quantity int    `db:"quantity"`
	}
	if err := pgxscan.Select(ctx, r.Querier(ctx), &rows, sql, args...); err != nil {
		return fmt.Errorf("get request items: %w", err)
	}

	req.OriginalItems = req.OriginalItems[:0]
	req.ExchangeItems = req.ExchangeItems[:0]
	for _, row := range rows {
		ri := returns.RequestItem{ItemID: row.ItemID, Quantity: row.Quantity}
		if row.Kind == requestItemKindExchange {
			req.ExchangeItems = append(req.ExchangeItems, ri)
		} else {
			req.OriginalItems = append(req.OriginalItems, ri)
		}
	}

	return nil
}

func (r *ReturnExchangeRepo) loadResponse(ctx context.Context, req *returns.Request) error {
	if req.Status == returns.StatusPending {
		return nil
	}

	q := r.Builder().
		Select("note", "response_date").
		From(requestsTableResponses).
		Where(squirrel.Eq{"request_id": req.ID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	var resp returns.AdminResponse
	if err := pgxscan.Get(ctx, r.Querier(ctx), &resp, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil
		}
		return fmt.Errorf("get admin response: %w", err)
	}

	req.Response = &resp
	return nil
}

// List retrieves requests with filtering. Item lists are not loaded for
// list views.
func (r *ReturnExchangeRepo) List(ctx context.Context, filter returns.ListFilter) (domain.ListResult[*returns.Request], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.BillID != nil {
		q = q.Where(squirrel.Eq{"bill_id": *filter.BillID})
	}

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	if filter.CreatedBy != nil {
		q = q.Where(squirrel.Eq{"created_by": *filter.CreatedBy})
	}

	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
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

// ResolveIfPending flips the request out of pending with a conditional
// update. The WHERE status = 'pending' guard makes resolution one-shot
// even under concurrent responses.
func (r *ReturnExchangeRepo) ResolveIfPending(ctx context.Context, requestID id.ID, status returns.Status, response returns.AdminResponse) (bool, error) {
	querier := r.Querier(ctx)

	result, err := querier.Exec(ctx,
		`UPDATE `+requestsTable+`
		 SET status = $2, updated_at = NOW(), version = version + 1
		 WHERE id = $1 AND status = $3`,
		requestID, status, returns.StatusPending)
	if err != nil {
		return false, fmt.Errorf("resolve request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return false, nil
	}

	_, err = querier.Exec(ctx,
		`INSERT INTO `+requestsTableResponses+` (request_id, note, response_date)
		 VALUES ($1, $2, $3)`,
		requestID, response.Note, response.ResponseDate)
	if err != nil {
		return false, fmt.Errorf("save admin response: %w", err)
	}

	return true, nil
}

// SetExchangeBill links the materialized exchange bill. The update only
// lands when no bill is linked yet, so concurrent materializations cannot
// both claim the request.
func (r *ReturnExchangeRepo) SetExchangeBill(ctx context.Context, requestID, billID id.ID) (bool, error) {
	result, err := r.Querier(ctx).Exec(ctx,
		`UPDATE `+requestsTable+`
		 SET exchange_bill_id = $2, updated_at = NOW(), version = version + 1
		 WHERE id = $1 AND exchange_bill_id IS NULL`,
		requestID, billID)
	if err != nil {
		return false, fmt.Errorf("set exchange bill: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
