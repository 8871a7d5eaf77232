package returns

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
	"billdesk/internal/domain/documents/bill"
	"billdesk/pkg/numerator"
)

type fakeRequestRepo struct {
	requests   map[id.ID]*Request
	beforeLink func()
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[id.ID]*Request)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req *Request) error {
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, requestID id.ID) (*Request, error) {
	req, ok := r.requests[requestID]
	if !ok {
		return nil, apperror.NewNotFound("return-exchange request", requestID.String())
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Request], error) {
	res := domain.ListResult[*Request]{}
	for _, req := range r.requests {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		res.Items = append(res.Items, req)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (r *fakeRequestRepo) ResolveIfPending(ctx context.Context, requestID id.ID, status Status, response AdminResponse) (bool, error) {
	req, ok := r.requests[requestID]
	if !ok {
		return false, apperror.NewNotFound("return-exchange request", requestID.String())
	}
	if req.Status != StatusPending {
		return false, nil
	}
	req.Status = status
	req.Response = &response
	return true, nil
}

func (r *fakeRequestRepo) SetExchangeBill(ctx context.Context, requestID, billID id.ID) (bool, error) {
	if r.beforeLink != nil {
		r.beforeLink()
	}
	req, ok := r.requests[requestID]
	if !ok {
		return false, apperror.NewNotFound("return-exchange request", requestID.String())
	}
	if req.ExchangeBillID != nil {
		return false, nil
	}
	req.ExchangeBillID = &billID
	return true, nil
}

type fakeBillEngine struct {
	bills   map[id.ID]*bill.Bill
	created []*bill.Bill
	history map[id.ID][]bill.ExchangeEntry
}

func newFakeBillEngine() *fakeBillEngine {
	return &fakeBillEngine{
		bills:   make(map[id.ID]*bill.Bill),
		history: make(map[id.ID][]bill.ExchangeEntry),
	}
}

func (e *fakeBillEngine) GetByID(ctx context.Context, billID id.ID) (*bill.Bill, error) {
	b, ok := e.bills[billID]
	if !ok {
		return nil, apperror.NewNotFound("bill", billID.String())
	}
	return b, nil
}

func (e *fakeBillEngine) Create(ctx context.Context, in bill.CreateInput) (*bill.Bill, error) {
	b := bill.NewBill(in.CustomerID, in.CreatedBy)
	b.Status = in.Status
	b.ExtraAmountPaid = in.ExtraAmountPaid
	b.FromExchangeRequest = in.FromExchangeRequest
	for _, li := range in.Lines {
		b.AddLine(li.ItemID, "", li.Quantity, li.Price, types.Zero())
	}
	e.bills[b.ID] = b
	e.created = append(e.created, b)
	return b, nil
}

func (e *fakeBillEngine) RecordExchange(ctx context.Context, billID id.ID, entries []bill.ExchangeEntry) error {
	e.history[billID] = append(e.history[billID], entries...)
	return nil
}

type fakePricer struct {
	items map[id.ID]*item.Item
}

func (p *fakePricer) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	it, ok := p.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	return it, nil
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

func priceItem(name, price string) *item.Item {
	return item.NewItem(name, types.MustMoney(price), types.MustMoney("18"), 100, id.New())
}

type fixture struct {
	svc     *Service
	repo    *fakeRequestRepo
	engine  *fakeBillEngine
	pricer  *fakePricer
	billID  id.ID
	itemA   *item.Item
	itemB   *item.Item
	created id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	itemA := priceItem("Shirt", "500")
	itemB := priceItem("Jacket", "650")
	pricer := &fakePricer{items: map[id.ID]*item.Item{
		itemA.ID: itemA,
		itemB.ID: itemB,
	}}

	engine := newFakeBillEngine()
	orig := bill.NewBill(id.New(), id.New())
	orig.AddLine(itemA.ID, itemA.Name, 1, itemA.Price, itemA.GST)
	engine.bills[orig.ID] = orig

	repo := newFakeRequestRepo()
	svc := NewService(repo, engine, pricer, numerator.New(&seqQuerier{}))

	return &fixture{
		svc:     svc,
		repo:    repo,
		engine:  engine,
		pricer:  pricer,
		billID:  orig.ID,
		itemA:   itemA,
		itemB:   itemB,
		created: orig.CreatedBy,
	}
}

func (f *fixture) newExchangeRequest(t *testing.T, exchangeItems []RequestItem) *Request {
	t.Helper()
	req, err := f.svc.Create(context.Background(), CreateInput{
		Type:          TypeExchange,
		BillID:        f.billID,
		CreatedBy:     id.New(),
		OriginalItems: []RequestItem{{ItemID: f.itemA.ID, Quantity: 1}},
		ExchangeItems: exchangeItems,
	})
	require.NoError(t, err)
	return req
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("valid exchange", func(t *testing.T) {
		req := f.newExchangeRequest(t, []RequestItem{{ItemID: f.itemB.ID, Quantity: 1}})
		assert.Equal(t, StatusPending, req.Status)
		assert.NotEmpty(t, req.Number)
	})

	t.Run("item not on the bill", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateInput{
			Type:          TypeReturn,
			BillID:        f.billID,
			CreatedBy:     id.New(),
			OriginalItems: []RequestItem{{ItemID: id.New(), Quantity: 1}},
		})
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidRequestState))
	})

	t.Run("quantity exceeds billed", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateInput{
			Type:          TypeReturn,
			BillID:        f.billID,
			CreatedBy:     id.New(),
			OriginalItems: []RequestItem{{ItemID: f.itemA.ID, Quantity: 5}},
		})
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidRequestState))
	})

	t.Run("exchange without exchange items", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateInput{
			Type:          TypeExchange,
			BillID:        f.billID,
			CreatedBy:     id.New(),
			OriginalItems: []RequestItem{{ItemID: f.itemA.ID, Quantity: 1}},
		})
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidRequestState))
	})

	t.Run("return with exchange items", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateInput{
			Type:          TypeReturn,
			BillID:        f.billID,
			CreatedBy:     id.New(),
			OriginalItems: []RequestItem{{ItemID: f.itemA.ID, Quantity: 1}},
			ExchangeItems: []RequestItem{{ItemID: f.itemB.ID, Quantity: 1}},
		})
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidRequestState))
	})
}

func TestRespondOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := f.newExchangeRequest(t, []RequestItem{{ItemID: f.itemB.ID, Quantity: 1}})

	resolved, err := f.svc.Respond(ctx, req.ID, true, "ok to swap")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resolved.Status)
	require.NotNil(t, resolved.Response)
	assert.Equal(t, "ok to swap", resolved.Response.Note)

	_, err = f.svc.Respond(ctx, req.ID, false, "changed my mind")
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeAlreadyResolved))

	// first resolution stands
	got, err := f.svc.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, got.Status)
}

func TestMaterializeExchange(t *testing.T) {
	ctx := context.Background()

	t.Run("customer owes the delta", func(t *testing.T) {
		f := newFixture(t)
		req := f.newExchangeRequest(t, []RequestItem{{ItemID: f.itemB.ID, Quantity: 1}})
		_, err := f.svc.Respond(ctx, req.ID, true, "")
		require.NoError(t, err)

		// 650 jacket replacing 500 shirt
		newBill, delta, err := f.svc.MaterializeExchange(ctx, req.ID, id.New())
		require.NoError(t, err)
		assert.True(t, delta.Equal(types.MustMoney("150")), "delta = %s", delta)
		assert.True(t, newBill.ExtraAmountPaid.Equal(types.MustMoney("150")))
		assert.Equal(t, bill.StatusPending, newBill.Status)
		require.NotNil(t, newBill.FromExchangeRequest)
		assert.Equal(t, req.ID, *newBill.FromExchangeRequest)

		linked, err := f.svc.GetByID(ctx, req.ID)
		require.NoError(t, err)
		require.NotNil(t, linked.ExchangeBillID)
		assert.Equal(t, newBill.ID, *linked.ExchangeBillID)

		history := f.engine.history[f.billID]
		require.Len(t, history, 1)
		assert.Equal(t, f.itemA.ID, history[0].OriginalItem)
		assert.Equal(t, f.itemB.ID, history[0].NewItem)
	})

	t.Run("refund when cheaper", func(t *testing.T) {
		f := newFixture(t)
		cheap := priceItem("Cap", "400")
		f.pricer.items[cheap.ID] = cheap

		req := f.newExchangeRequest(t, []RequestItem{{ItemID: cheap.ID, Quantity: 1}})
		_, err := f.svc.Respond(ctx, req.ID, true, "")
		require.NoError(t, err)

		newBill, delta, err := f.svc.MaterializeExchange(ctx, req.ID, id.New())
		require.NoError(t, err)
		assert.True(t, delta.Equal(types.MustMoney("-100")), "delta = %s", delta)
		assert.True(t, newBill.ExtraAmountPaid.IsZero(), "refunds never show as extra paid")
	})

	t.Run("pending request rejected", func(t *testing.T) {
		f := newFixture(t)
		req := f.newExchangeRequest(t, []RequestItem{{ItemID: f.itemB.ID, Quantity: 1}})

		_, _, err := f.svc.MaterializeExchange(ctx, req.ID, id.New())
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeRequestNotApproved))
	})

	t.Run("return request rejected", func(t *testing.T) {
		f := newFixture(t)
		req, err := f.svc.Create(ctx, CreateInput{
			Type:          TypeReturn,
			BillID:        f.billID,
			CreatedBy:     id.New(),
			OriginalItems: []RequestItem{{ItemID: f.itemA.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		_, err = f.svc.Respond(ctx, req.ID, true, "")
		require.NoError(t, err)

		_, _, err = f.svc.MaterializeExchange(ctx, req.ID, id.New())
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeNotExchangeType))
	})

	t.Run("concurrent materialization loses the link", func(t *testing.T) {
		f := newFixture(t)
		req := f.newExchangeRequest(t, []RequestItem{{ItemID: f.itemB.ID, Quantity: 1}})
		_, err := f.svc.Respond(ctx, req.ID, true, "")
		require.NoError(t, err)

		// A rival call links its bill between our status read and the
		// conditional update; the update must miss and the call must fail.
		rival := id.New()
		f.repo.beforeLink = func() {
			f.repo.beforeLink = nil
			f.repo.requests[req.ID].ExchangeBillID = &rival
		}

		_, _, err = f.svc.MaterializeExchange(ctx, req.ID, id.New())
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidRequestState))

		linked, err := f.svc.GetByID(ctx, req.ID)
		require.NoError(t, err)
		require.NotNil(t, linked.ExchangeBillID)
		assert.Equal(t, rival, *linked.ExchangeBillID)
	})

	t.Run("second materialization rejected", func(t *testing.T) {
		f := newFixture(t)
		req := f.newExchangeRequest(t, []RequestItem{{ItemID: f.itemB.ID, Quantity: 1}})
		_, err := f.svc.Respond(ctx, req.ID, true, "")
		require.NoError(t, err)

		_, _, err = f.svc.MaterializeExchange(ctx, req.ID, id.New())
		require.NoError(t, err)

		_, _, err = f.svc.MaterializeExchange(ctx, req.ID, id.New())
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidRequestState))
	})
}
