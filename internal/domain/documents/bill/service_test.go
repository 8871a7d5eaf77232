package bill

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
	"billdesk/internal/domain"
	"billdesk/internal/domain/catalogs/item"
	"billdesk/pkg/numerator"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeItemCatalog struct {
	items map[id.ID]*item.Item
}

func (f *fakeItemCatalog) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	it, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemCatalog) DecrementStock(ctx context.Context, itemID id.ID, qty int) error {
	it, ok := f.items[itemID]
	if !ok {
		return apperror.NewNotFound("item", itemID.String())
	}
	if it.Stock < qty {
		return apperror.NewInsufficientStock(it.Name, qty, it.Stock)
	}
	it.Stock -= qty
	return nil
}

func (f *fakeItemCatalog) IncrementStock(ctx context.Context, itemID id.ID, qty int) error {
	it, ok := f.items[itemID]
	if !ok {
		return apperror.NewNotFound("item", itemID.String())
	}
	it.Stock += qty
	return nil
}

type fakeParties struct{}

func (fakeParties) CustomerExists(ctx context.Context, customerID id.ID) (bool, error) {
	return true, nil
}
func (fakeParties) AgentExists(ctx context.Context, agentID id.ID) (bool, error) { return true, nil }
func (fakeParties) EmployeeExists(ctx context.Context, employeeID id.ID) (bool, error) {
	return true, nil
}

type fakeBillRepo struct {
	bills   map[id.ID]*Bill
	lines   map[id.ID][]Line
	history map[id.ID][]ExchangeEntry
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{
		bills:   make(map[id.ID]*Bill),
		lines:   make(map[id.ID][]Line),
		history: make(map[id.ID][]ExchangeEntry),
	}
}

func (r *fakeBillRepo) Create(ctx context.Context, b *Bill) error {
	cp := *b
	r.bills[b.ID] = &cp
	return nil
}

func (r *fakeBillRepo) SaveLines(ctx context.Context, billID id.ID, lines []Line) error {
	r.lines[billID] = lines
	return nil
}

func (r *fakeBillRepo) GetLines(ctx context.Context, billID id.ID) ([]Line, error) {
	return r.lines[billID], nil
}

func (r *fakeBillRepo) GetByID(ctx context.Context, billID id.ID) (*Bill, error) {
	b, ok := r.bills[billID]
	if !ok {
		return nil, apperror.NewNotFound("bill", billID.String())
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBillRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Bill], error) {
	res := domain.ListResult[*Bill]{Items: make([]*Bill, 0, len(r.bills))}
	for _, b := range r.bills {
		res.Items = append(res.Items, b)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (r *fakeBillRepo) UpdateStatus(ctx context.Context, billID id.ID, status Status) error {
	b, ok := r.bills[billID]
	if !ok {
		return apperror.NewNotFound("bill", billID.String())
	}
	b.Status = status
	return nil
}

func (r *fakeBillRepo) Delete(ctx context.Context, billID id.ID) error {
	if _, ok := r.bills[billID]; !ok {
		return apperror.NewNotFound("bill", billID.String())
	}
	delete(r.bills, billID)
	delete(r.lines, billID)
	return nil
}

func (r *fakeBillRepo) AppendExchangeHistory(ctx context.Context, billID id.ID, entries []ExchangeEntry) error {
	r.history[billID] = append(r.history[billID], entries...)
	return nil
}

func (r *fakeBillRepo) GetExchangeHistory(ctx context.Context, billID id.ID) ([]ExchangeEntry, error) {
	return r.history[billID], nil
}

type seqRow struct{ n int64 }

func (r *seqRow) Scan(dest ...any) error {
	if p, ok := dest[0].(*int64); ok {
		*p = r.n
	}
	return nil
}

type seqQuerier struct{ n int64 }

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.n++
	return &seqRow{n: q.n}
}

func newTestNumerator() *numerator.Service {
	return numerator.New(&seqQuerier{})
}

func testItem(name string, price, gst string, stock int, commissionable bool) *item.Item {
	it := item.NewItem(name, types.MustMoney(price), types.MustMoney(gst), stock, id.New())
	it.CommissionApplicable = commissionable
	return it
}

func newTestService(t *testing.T, items *fakeItemCatalog, opts Options) (*Service, *fakeBillRepo) {
	t.Helper()
	repo := newFakeBillRepo()
	num := newTestNumerator()
	svc := NewService(repo, items, fakeParties{}, num, fakeTxManager{}, opts)
	return svc, repo
}

func cartLine(it *item.Item, qty int) LineInput {
	return LineInput{ItemID: it.ID, Quantity: qty, Price: it.Price}
}

func TestCreateBill(t *testing.T) {
	ctx := context.Background()

	widget := testItem("Widget", "100", "18", 10, true)
	gadget := testItem("Gadget", "50", "5", 4, false)
	catalog := &fakeItemCatalog{items: map[id.ID]*item.Item{
		widget.ID: widget,
		gadget.ID: gadget,
	}}

	svc, repo := newTestService(t, catalog, Options{})

	percent := types.MustMoney("10")
	agentID := id.New()
	b, err := svc.Create(ctx, CreateInput{
		CustomerID:        id.New(),
		CreatedBy:         id.New(),
		AgentID:           &agentID,
		CommissionPercent: &percent,
		Status:            StatusPaid,
		Lines: []LineInput{
			cartLine(widget, 2),
			cartLine(gadget, 1),
		},
	})
	require.NoError(t, err)

	// 2x100 + 1x50 = 250, gst 36 + 2.5 = 38.5
	assert.True(t, b.Subtotal.Equal(types.MustMoney("250")))
	assert.True(t, b.Total.Equal(types.MustMoney("288.5")))
	assert.True(t, b.PaidAmount.Equal(b.Total), "paid bills default paidAmount to total")

	// Only Widget is commission applicable: 100 * 1.18 * 2 = 236, 10% = 23.6
	assert.True(t, b.AgentCommission.Equal(types.MustMoney("23.6")), "commission = %s", b.AgentCommission)

	assert.NotEmpty(t, b.Number)
	assert.Equal(t, 8, widget.Stock)
	assert.Equal(t, 3, gadget.Stock)

	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total.Equal(b.Total))
	require.Len(t, repo.lines[b.ID], 2)
}

func TestCreateBillCommissionCap(t *testing.T) {
	ctx := context.Background()

	widget := testItem("Widget", "100", "18", 10, true)
	catalog := &fakeItemCatalog{items: map[id.ID]*item.Item{widget.ID: widget}}
	svc, _ := newTestService(t, catalog, Options{})

	percent := types.MustMoney("10")
	cap := types.MustMoney("10")
	agentID := id.New()
	b, err := svc.Create(ctx, CreateInput{
		CustomerID:        id.New(),
		CreatedBy:         id.New(),
		AgentID:           &agentID,
		CommissionPercent: &percent,
		CommissionCap:     &cap,
		Status:            StatusPaid,
		Lines:             []LineInput{cartLine(widget, 2)},
	})
	require.NoError(t, err)
	assert.True(t, b.AgentCommission.Equal(cap), "commission clamped to cap, got %s", b.AgentCommission)
}

func TestCreateBillInsufficientStock(t *testing.T) {
	ctx := context.Background()

	widget := testItem("Widget", "100", "18", 3, false)
	catalog := &fakeItemCatalog{items: map[id.ID]*item.Item{widget.ID: widget}}
	svc, repo := newTestService(t, catalog, Options{})

	_, err := svc.Create(ctx, CreateInput{
		CustomerID: id.New(),
		CreatedBy:  id.New(),
		Status:     StatusPending,
		Lines:      []LineInput{cartLine(widget, 5)},
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInsufficientStock))

	assert.Equal(t, 3, widget.Stock, "failed bill must not touch stock")
	assert.Empty(t, repo.bills, "failed bill must not be persisted")
}

func TestCreateBillItemNotFound(t *testing.T) {
	ctx := context.Background()

	catalog := &fakeItemCatalog{items: map[id.ID]*item.Item{}}
	svc, _ := newTestService(t, catalog, Options{})

	_, err := svc.Create(ctx, CreateInput{
		CustomerID: id.New(),
		CreatedBy:  id.New(),
		Status:     StatusPending,
		Lines:      []LineInput{{ItemID: id.New(), Quantity: 1, Price: types.MustMoney("10")}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateBillPartialPayment(t *testing.T) {
	ctx := context.Background()

	widget := testItem("Widget", "100", "18", 10, false)
	catalog := &fakeItemCatalog{items: map[id.ID]*item.Item{widget.ID: widget}}
	svc, _ := newTestService(t, catalog, Options{})

	mode := "cash"
	newInput := func(paid string) CreateInput {
		amount := types.MustMoney(paid)
		return CreateInput{
			CustomerID:  id.New(),
			CreatedBy:   id.New(),
			Status:      StatusPartialPaid,
			PaymentMode: &mode,
			PaidAmount:  &amount,
			Lines:       []LineInput{cartLine(widget, 1)},
		}
	}

	t.Run("within range", func(t *testing.T) {
		b, err := svc.Create(ctx, newInput("50"))
		require.NoError(t, err)
		assert.True(t, b.PaidAmount.Equal(types.MustMoney("50")))
	})

	t.Run("zero rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, newInput("0"))
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidPayment))
	})

	t.Run("at total rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, newInput("118"))
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidPayment))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	widget := testItem("Widget", "100", "18", 10, false)
	catalog := &fakeItemCatalog{items: map[id.ID]*item.Item{widget.ID: widget}}
	svc, repo := newTestService(t, catalog, Options{})

	b, err := svc.Create(ctx, CreateInput{
		CustomerID: id.New(),
		CreatedBy:  id.New(),
		Status:     StatusPending,
		Lines:      []LineInput{cartLine(widget, 1)},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, b.ID, StatusPaid))
	assert.Equal(t, StatusPaid, repo.bills[b.ID].Status)

	err = svc.UpdateStatus(ctx, b.ID, StatusPartialPaid)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	err = svc.UpdateStatus(ctx, id.New(), StatusPaid)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteBill(t *testing.T) {
	ctx := context.Background()

	t.Run("no restock by default", func(t *testing.T) {
		widget := testItem("Widget", "100", "18", 10, false)
		catalog := &fakeItemCatalog{items: map[id.ID]*item.Item{widget.ID: widget}}
		svc, repo := newTestService(t, catalog, Options{})

		b, err := svc.Create(ctx, CreateInput{
			CustomerID: id.New(),
			CreatedBy:  id.New(),
			Status:     StatusPending,
			Lines:      []LineInput{cartLine(widget, 4)},
		})
		require.NoError(t, err)
		require.Equal(t, 6, widget.Stock)

		require.NoError(t, svc.Delete(ctx, b.ID))
		assert.Equal(t, 6, widget.Stock)
		assert.Empty(t, repo.bills)
	})

	t.Run("restock when enabled", func(t *testing.T) {
		widget := testItem("Widget", "100", "18", 10, false)
		catalog := &fakeItemCatalog{items: map[id.ID]*item.Item{widget.ID: widget}}
		svc, _ := newTestService(t, catalog, Options{RestockOnDelete: true})

		b, err := svc.Create(ctx, CreateInput{
			CustomerID: id.New(),
			CreatedBy:  id.New(),
			Status:     StatusPending,
			Lines:      []LineInput{cartLine(widget, 4)},
		})
		require.NoError(t, err)
		require.Equal(t, 6, widget.Stock)

		require.NoError(t, svc.Delete(ctx, b.ID))
		assert.Equal(t, 10, widget.Stock)
	})
}
