package item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billdesk/internal/core/apperror"
	"billdesk/internal/core/id"
	"billdesk/internal/core/types"
)

func TestItemValidate(t *testing.T) {
	ctx := context.Background()
	vendorID := id.New()

	t.Run("valid item", func(t *testing.T) {
		it := NewItem("Saree", types.MustMoney("499.00"), types.MustMoney("12"), 20, vendorID)
		require.NoError(t, it.Validate(ctx))
		assert.Equal(t, DefaultCategory, it.Category)
	})

	t.Run("negative price", func(t *testing.T) {
		it := NewItem("Saree", types.MustMoney("-1"), types.MustMoney("12"), 20, vendorID)
		err := it.Validate(ctx)
		require.Error(t, err)
		assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
	})

	t.Run("gst out of range", func(t *testing.T) {
		it := NewItem("Saree", types.MustMoney("100"), types.MustMoney("101"), 20, vendorID)
		require.Error(t, it.Validate(ctx))
	})

	t.Run("negative stock", func(t *testing.T) {
		it := NewItem("Saree", types.MustMoney("100"), types.MustMoney("12"), -1, vendorID)
		require.Error(t, it.Validate(ctx))
	})

	t.Run("missing vendor", func(t *testing.T) {
		it := NewItem("Saree", types.MustMoney("100"), types.MustMoney("12"), 5, id.Nil())
		require.Error(t, it.Validate(ctx))
	})

	t.Run("missing name", func(t *testing.T) {
		it := NewItem("", types.MustMoney("100"), types.MustMoney("12"), 5, vendorID)
		require.Error(t, it.Validate(ctx))
	})
}

func TestGSTInclusivePrice(t *testing.T) {
	it := NewItem("Shirt", types.MustMoney("100"), types.MustMoney("18"), 5, id.New())
	assert.True(t, it.GSTInclusivePrice().Equal(types.MustMoney("118")),
		"expected 118, got %s", it.GSTInclusivePrice())
}
