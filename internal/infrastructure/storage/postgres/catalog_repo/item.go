package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/domain"
	"billdesk/internal/domain/catalogs/item"
	"billdesk/internal/infrastructure/storage/postgres"
)

const itemTable = "cat_items"

// ItemRepo implements item.Repository.
type ItemRepo struct {
	*BaseCatalogRepo[*item.Item]
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txManager *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			itemTable,
			postgres.ExtractDBColumns[item.Item](),
			func() *item.Item { return &item.Item{} },
		),
	}
}

// FindByName retrieves an item by its unique name.
func (r *ItemRepo) FindByName(ctx context.Context, name string) (*item.Item, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	it, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("item", name)
		}
		return nil, err
	}
	return it, nil
}

// Search retrieves up to limit items whose name matches the query.
func (r *ItemRepo) Search(ctx context.Context, query string, limit int) ([]*item.Item, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.ILike{"name": "%" + query + "%"}).
		OrderBy("name ASC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search: %w", err)
	}

	var items []*item.Item
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("search items: %w", err)
	}
	return items, nil
}

// ListItems retrieves items with item-specific filtering.
func (r *ItemRepo) ListItems(ctx context.Context, filter item.ListFilter) (domain.ListResult[*item.Item], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"code": pattern},
		})
	}

	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}

	if filter.VendorID != nil {
		q = q.Where(squirrel.Eq{"vendor_id": *filter.VendorID})
	}

	if filter.StockBelow != nil {
		q = q.Where(squirrel.Lt{"stock": *filter.StockBelow})
	}

	return r.ListQuery(ctx, q, filter.ListFilter)
}

// DecrementStock atomically decrements stock with a conditional update.
// The WHERE stock >= qty guard is the single source of truth for
// availability under concurrency.
func (r *ItemRepo) DecrementStock(ctx context.Context, itemID id.ID, qty int) error {
	result, err := r.Querier(ctx).Exec(ctx,
		`UPDATE `+itemTable+` SET stock = stock - $2 WHERE id = $1 AND stock >= $2`,
		itemID, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Re-read to tell "missing item" apart from "not enough stock"
		it, getErr := r.GetByID(ctx, itemID)
		if getErr != nil {
			return getErr
		}
		return apperror.NewInsufficientStock(it.Name, qty, it.Stock)
	}

	return nil
}

// IncrementStock atomically adds qty back to stock.
func (r *ItemRepo) IncrementStock(ctx context.Context, itemID id.ID, qty int) error {
	result, err := r.Querier(ctx).Exec(ctx,
		`UPDATE `+itemTable+` SET stock = stock + $2 WHERE id = $1`,
		itemID, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID.String())
	}

	return nil
}
