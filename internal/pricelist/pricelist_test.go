package pricelist

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFans map[int64]*model.Fan

func (s stubFans) GetFan(_ context.Context, id int64) (*model.Fan, error) {
	f, ok := s[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func fan(id int64, wholesale, retail string) *model.Fan {
	return &model.Fan{
		BaseModel:      model.BaseModel{ID: id},
		Name:           "Fan",
		PriceWholesale: decimal.RequireFromString(wholesale),
		PriceRetail:    decimal.RequireFromString(retail),
	}
}

func newList(t *testing.T, fans stubFans, ids ...int64) *PriceList {
	t.Helper()
	p := New(fans, logger.NewNop())
	for _, id := range ids {
		_, err := p.AddItem(context.Background(), id, model.TierRetail)
		require.NoError(t, err)
	}
	return p
}

func fanIDs(p *PriceList) []int64 {
	ids := []int64{}
	for _, it := range p.Items() {
		ids = append(ids, it.FanID)
	}
	return ids
}

func assertContiguous(t *testing.T, p *PriceList) {
	t.Helper()
	for i, it := range p.Items() {
		assert.Equal(t, i+1, it.Order)
	}
}

func threeFans() stubFans {
	return stubFans{
		1: fan(1, "10", "15"),
		2: fan(2, "20", "30"),
		3: fan(3, "40", "60"),
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	p := New(threeFans(), logger.NewNop())

	item, err := p.AddItem(ctx, 2, model.TierWholesale)
	require.NoError(t, err)
	assert.Equal(t, LineItem{FanID: 2, Quantity: 1, Tier: model.TierWholesale, Order: 1}, item)

	_, err = p.AddItem(ctx, 2, model.TierRetail)
	assert.True(t, apperror.IsDuplicate(err))
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, model.TierWholesale, p.Items()[0].Tier)

	_, err = p.AddItem(ctx, 99, model.TierRetail)
	assert.True(t, apperror.IsNotFound(err))

	_, err = p.AddItem(ctx, 1, model.PriceTier("vip"))
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 1, p.Len())
}

func TestAddItemPropagatesSourceErrors(t *testing.T) {
	boom := errors.New("disk gone")
	p := New(failingFans{err: boom}, logger.NewNop())

	_, err := p.AddItem(context.Background(), 1, model.TierRetail)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, p.Len())
}

type failingFans struct{ err error }

func (f failingFans) GetFan(context.Context, int64) (*model.Fan, error) { return nil, f.err }

func TestRemoveItemKeepsOrderContiguous(t *testing.T) {
	p := newList(t, threeFans(), 1, 2, 3)

	assert.True(t, p.RemoveItem(2))
	assert.False(t, p.RemoveItem(2))
	assert.Equal(t, []int64{1, 3}, fanIDs(p))
	assertContiguous(t, p)
}

func TestSetQuantity(t *testing.T) {
	p := newList(t, threeFans(), 1)

	require.NoError(t, p.SetQuantity(1, 4))
	assert.Equal(t, 4, p.Items()[0].Quantity)

	err := p.SetQuantity(1, 0)
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 4, p.Items()[0].Quantity)

	assert.True(t, apperror.IsValidation(p.SetQuantity(1, -3)))
	assert.True(t, apperror.IsNotFound(p.SetQuantity(2, 1)))
}

func TestSetPriceTier(t *testing.T) {
	p := newList(t, threeFans(), 3)

	require.NoError(t, p.SetPriceTier(3, model.TierWholesale))
	assert.Equal(t, model.TierWholesale, p.Items()[0].Tier)

	assert.True(t, apperror.IsValidation(p.SetPriceTier(3, model.PriceTier(""))))
	assert.True(t, apperror.IsNotFound(p.SetPriceTier(1, model.TierRetail)))
}

func TestMoveUpAndDown(t *testing.T) {
	p := newList(t, threeFans(), 1, 2, 3)

	require.NoError(t, p.MoveUp(3))
	assert.Equal(t, []int64{1, 3, 2}, fanIDs(p))
	assertContiguous(t, p)

	require.NoError(t, p.MoveDown(1))
	assert.Equal(t, []int64{3, 1, 2}, fanIDs(p))
	assertContiguous(t, p)

	assert.True(t, apperror.IsNotFound(p.MoveUp(42)))
}

func TestMoveAtBoundaryIsNoOp(t *testing.T) {
	p := newList(t, threeFans(), 1, 2, 3)
	before := p.Items()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, p.MoveUp(1), ErrAtBoundary)
		assert.ErrorIs(t, p.MoveDown(3), ErrAtBoundary)
	}
	assert.Equal(t, before, p.Items())
}

func TestSortByIdentity(t *testing.T) {
	p := newList(t, threeFans(), 2, 3, 1)

	p.SortByIdentity(true)
	assert.Equal(t, []int64{1, 2, 3}, fanIDs(p))
	assertContiguous(t, p)

	p.SortByIdentity(false)
	assert.Equal(t, []int64{3, 2, 1}, fanIDs(p))
	assertContiguous(t, p)
}

func TestClear(t *testing.T) {
	p := newList(t, threeFans(), 1, 2)
	p.Clear()
	assert.Zero(t, p.Len())
	assert.Empty(t, p.Items())

	_, err := p.AddItem(context.Background(), 2, model.TierRetail)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Items()[0].Order)
}

func TestItemsReturnsCopy(t *testing.T) {
	p := newList(t, threeFans(), 1)
	items := p.Items()
	items[0].Quantity = 50
	assert.Equal(t, 1, p.Items()[0].Quantity)
}

func TestComputeTotals(t *testing.T) {
	ctx := context.Background()
	fans := threeFans()
	p := newList(t, fans, 1, 2, 3)

	require.NoError(t, p.SetQuantity(1, 2))
	require.NoError(t, p.SetQuantity(3, 3))
	require.NoError(t, p.SetPriceTier(2, model.TierWholesale))

	totals, err := p.ComputeTotals(ctx)
	require.NoError(t, err)
	require.Len(t, totals.Lines, 3)

	sum := decimal.Zero
	for _, l := range totals.Lines {
		assert.True(t, l.LineTotal.Equal(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Item.Quantity)))))
		sum = sum.Add(l.LineTotal)
	}
	assert.True(t, totals.GrandTotal.Equal(sum))
	// 2*15 + 1*20 + 3*60
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(230)), totals.GrandTotal.String())

	fans[3].PriceRetail = decimal.NewFromInt(70)
	totals, err = p.ComputeTotals(ctx)
	require.NoError(t, err)
	assert.True(t, totals.GrandTotal.Equal(decimal.NewFromInt(260)), totals.GrandTotal.String())

	delete(fans, 2)
	_, err = p.ComputeTotals(ctx)
	assert.True(t, apperror.IsNotFound(err))
}

func TestComputeTotalsOnEmptyList(t *testing.T) {
	totals, err := New(stubFans{}, logger.NewNop()).ComputeTotals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, totals.Lines)
	assert.True(t, totals.GrandTotal.IsZero())
}
