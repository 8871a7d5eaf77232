package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"billdesk/internal/core/id"
	"billdesk/internal/domain/catalogs/vendor"
	"billdesk/internal/infrastructure/storage/postgres"
)

const vendorTable = "cat_vendors"

// VendorRepo implements vendor.Repository.
type VendorRepo struct {
	*BaseCatalogRepo[*vendor.Vendor]
}

// NewVendorRepo creates a new vendor repository.
func NewVendorRepo(txManager *postgres.TxManager) *VendorRepo {
	return &VendorRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			vendorTable,
			postgres.ExtractDBColumns[vendor.Vendor](),
			func() *vendor.Vendor { return &vendor.Vendor{} },
		),
	}
}

// SuppliedItemIDs returns ids of non-deleted items referencing the vendor.
func (r *VendorRepo) SuppliedItemIDs(ctx context.Context, vendorID id.ID) ([]id.ID, error) {
	q := r.Builder().
		Select("id").
		From(itemTable).
		Where(squirrel.Eq{"vendor_id": vendorID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ids []id.ID
	if err := pgxscan.Select(ctx, r.Querier(ctx), &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("supplied items: %w", err)
	}
	return ids, nil
}
