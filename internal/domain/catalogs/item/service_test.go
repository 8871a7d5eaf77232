package item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/domain"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeVendors struct{}

func (fakeVendors) Exists(ctx context.Context, vendorID id.ID) (bool, error) { return true, nil }

// fakeItemRepo records the filter handed to ListItems; the embedded
// interface covers the methods this test never touches.
type fakeItemRepo struct {
	Repository
	gotFilter ListFilter
	items     []*Item
}

func (r *fakeItemRepo) ListItems(ctx context.Context, filter ListFilter) (domain.ListResult[*Item], error) {
	r.gotFilter = filter
	return domain.ListResult[*Item]{
		Items:      r.items,
		TotalCount: int64(len(r.items)),
		Limit:      filter.Limit,
	}, nil
}

func TestLowStock(t *testing.T) {
	low := NewItem("Cotton Shirt", types.MustMoney("499"), types.MustMoney("5"), 3, id.New())
	repo := &fakeItemRepo{items: []*Item{low}}
	svc := NewService(repo, fakeVendors{}, nil, fakeTxManager{})

	result, err := svc.LowStock(context.Background())
	require.NoError(t, err)

	require.NotNil(t, repo.gotFilter.StockBelow)
	assert.Equal(t, LowStockThreshold, *repo.gotFilter.StockBelow)
	assert.Equal(t, "stock", repo.gotFilter.OrderBy)
	require.Len(t, result.Items, 1)
	assert.Equal(t, low.ID, result.Items[0].ID)
}

func TestListItems_DefaultLimit(t *testing.T) {
	repo := &fakeItemRepo{}
	svc := NewService(repo, fakeVendors{}, nil, fakeTxManager{})

	_, err := svc.ListItems(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultListFilter().Limit, repo.gotFilter.Limit)
}
