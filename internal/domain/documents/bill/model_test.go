package bill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
)

func TestAddLineTotals(t *testing.T) {
	b := NewBill(id.New(), id.New())

	// 2 x 100 @ 18% GST, 1 x 50 @ 5% GST
	b.AddLine(id.New(), "Widget", 2, types.MustMoney("100"), types.MustMoney("18"))
	b.AddLine(id.New(), "Gadget", 1, types.MustMoney("50"), types.MustMoney("5"))

	assert.True(t, b.Subtotal.Equal(types.MustMoney("250")), "subtotal = %s", b.Subtotal)
	assert.True(t, b.GSTAmount.Equal(types.MustMoney("38.5")), "gst = %s", b.GSTAmount)
	assert.True(t, b.Total.Equal(b.Subtotal.Add(b.GSTAmount)), "total must equal subtotal+gst")
	assert.True(t, b.Total.Equal(types.MustMoney("288.5")), "total = %s", b.Total)

	require.Len(t, b.Lines, 2)
	assert.Equal(t, 1, b.Lines[0].LineNo)
	assert.Equal(t, 2, b.Lines[1].LineNo)
	assert.True(t, b.Lines[0].LineTotal.Equal(types.MustMoney("200")))
	assert.True(t, b.Lines[0].LineGST.Equal(types.MustMoney("36")))
}

func TestComputeCommission(t *testing.T) {
	// One commission-applicable item: price 100, gst 18, qty 2.
	// Applicable value = 100 * 1.18 * 2 = 236.
	applicable := types.MustMoney("100").
		Mul(types.GSTMultiplier(types.MustMoney("18"))).
		Mul(types.NewMoneyFromInt(2))
	require.True(t, applicable.Equal(types.MustMoney("236")))

	t.Run("percentage of applicable value", func(t *testing.T) {
		got := ComputeCommission(applicable, types.MustMoney("10"), nil)
		assert.True(t, got.Equal(types.MustMoney("23.6")), "commission = %s", got)
	})

	t.Run("clamped to cap", func(t *testing.T) {
		cap := types.MustMoney("10")
		got := ComputeCommission(applicable, types.MustMoney("10"), &cap)
		assert.True(t, got.Equal(cap), "commission = %s", got)
	})

	t.Run("cap above commission leaves it alone", func(t *testing.T) {
		cap := types.MustMoney("100")
		got := ComputeCommission(applicable, types.MustMoney("10"), &cap)
		assert.True(t, got.Equal(types.MustMoney("23.6")), "commission = %s", got)
	})
}

func TestNormalizePayment(t *testing.T) {
	newBill := func(status Status) *Bill {
		b := NewBill(id.New(), id.New())
		b.AddLine(id.New(), "Widget", 1, types.MustMoney("100"), types.MustMoney("18"))
		b.Status = status
		return b
	}

	t.Run("paid defaults to total", func(t *testing.T) {
		b := newBill(StatusPaid)
		require.NoError(t, b.NormalizePayment())
		assert.True(t, b.PaidAmount.Equal(b.Total))
	})

	t.Run("paid cannot exceed total", func(t *testing.T) {
		b := newBill(StatusPaid)
		b.PaidAmount = types.MustMoney("200")
		err := b.NormalizePayment()
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidPayment))
	})

	t.Run("partial within range", func(t *testing.T) {
		b := newBill(StatusPartialPaid)
		b.PaidAmount = types.MustMoney("50")
		require.NoError(t, b.NormalizePayment())
		assert.True(t, b.PaidAmount.Equal(types.MustMoney("50")))
	})

	t.Run("partial at zero rejected", func(t *testing.T) {
		b := newBill(StatusPartialPaid)
		err := b.NormalizePayment()
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidPayment))
	})

	t.Run("partial at total rejected", func(t *testing.T) {
		b := newBill(StatusPartialPaid)
		b.PaidAmount = b.Total
		err := b.NormalizePayment()
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidPayment))
	})

	t.Run("pending clears payment", func(t *testing.T) {
		b := newBill(StatusPending)
		mode := "cash"
		b.PaymentMode = &mode
		b.PaidAmount = types.MustMoney("30")
		require.NoError(t, b.NormalizePayment())
		assert.True(t, b.PaidAmount.IsZero())
		assert.Nil(t, b.PaymentMode)
	})
}

func TestBillValidate(t *testing.T) {
	valid := func() *Bill {
		b := NewBill(id.New(), id.New())
		b.AddLine(id.New(), "Widget", 1, types.MustMoney("100"), types.MustMoney("18"))
		return b
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate(context.Background()))
	})

	t.Run("missing customer", func(t *testing.T) {
		b := valid()
		b.CustomerID = id.Nil()
		assert.Error(t, b.Validate(context.Background()))
	})

	t.Run("no lines", func(t *testing.T) {
		b := NewBill(id.New(), id.New())
		assert.Error(t, b.Validate(context.Background()))
	})

	t.Run("bad status", func(t *testing.T) {
		b := valid()
		b.Status = Status("cancelled")
		assert.Error(t, b.Validate(context.Background()))
	})
}
