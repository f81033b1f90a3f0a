package earnings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
)

func TestAdd_AssignsUniqueIDs(t *testing.T) {
	var list earnings.ExpenseList
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		item := list.Add("x", 1, 1)
		require.NotEmpty(t, item.ID)
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
	}
	assert.Len(t, list, 100)
}

func TestAdd_ClampsNegativeValues(t *testing.T) {
	var list earnings.ExpenseList
	item := list.Add("refund", -2, -3)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, 0.0, item.UnitPrice)
	assert.Equal(t, 0.0, item.LineTotal)
}

func TestRemove_PreservesOrder(t *testing.T) {
	var list earnings.ExpenseList
	a := list.Add("a", 1, 1)
	b := list.Add("b", 1, 1)
	c := list.Add("c", 1, 1)

	require.True(t, list.Remove(b.ID))
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	assert.False(t, list.Remove(b.ID), "second remove of the same id")
	assert.Len(t, list, 2)
}

func TestUpdate_RecomputesOnlyNumericFields(t *testing.T) {
	var list earnings.ExpenseList
	item := list.Add("Taxi", 2, 12.5)
	other := list.Add("Lunch", 1, 9)

	require.NoError(t, list.Update(item.ID, earnings.FieldQuantity, "3"))
	assert.Equal(t, 3, list[0].Quantity)
	assert.InDelta(t, 37.5, list[0].LineTotal, 1e-9)

	require.NoError(t, list.Update(item.ID, earnings.FieldPrice, "10"))
	assert.InDelta(t, 30.0, list[0].LineTotal, 1e-9)

	// A stale line total must survive a name change untouched.
	list[0].LineTotal = 1
	require.NoError(t, list.Update(item.ID, earnings.FieldName, "Cab"))
	assert.Equal(t, "Cab", list[0].Name)
	assert.Equal(t, 1.0, list[0].LineTotal)

	assert.Equal(t, other, list[1], "other items are untouched")
}

func TestUpdate_InvalidNumbersBecomeZero(t *testing.T) {
	var list earnings.ExpenseList
	item := list.Add("Hotel", 2, 80)
	require.NoError(t, list.Update(item.ID, earnings.FieldPrice, "free"))
	assert.Equal(t, 0.0, list[0].UnitPrice)
	assert.Equal(t, 0.0, list[0].LineTotal)
}

func TestUpdate_Errors(t *testing.T) {
	var list earnings.ExpenseList
	item := list.Add("Hotel", 1, 80)

	err := list.Update("missing", earnings.FieldName, "x")
	assert.ErrorIs(t, err, earnings.ErrExpenseNotFound)

	err = list.Update(item.ID, earnings.Field("color"), "red")
	assert.ErrorIs(t, err, earnings.ErrUnknownField)
}

func TestParseField(t *testing.T) {
	cases := map[string]earnings.Field{
		"name":       earnings.FieldName,
		"QTY":        earnings.FieldQuantity,
		"quantity":   earnings.FieldQuantity,
		"unit_price": earnings.FieldPrice,
		"price":      earnings.FieldPrice,
	}
	for in, want := range cases {
		got, err := earnings.ParseField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := earnings.ParseField("total")
	assert.ErrorIs(t, err, earnings.ErrUnknownField)
}

func TestFind_ByPrefix(t *testing.T) {
	list := earnings.ExpenseList{
		{ID: "abc-1", Name: "one"},
		{ID: "abd-2", Name: "two"},
	}
	got, err := list.Find("abd")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Name)

	got, err = list.Find("abc-1")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Name)

	_, err = list.Find("ab")
	assert.ErrorIs(t, err, earnings.ErrAmbiguousID)

	_, err = list.Find("zzz")
	assert.ErrorIs(t, err, earnings.ErrExpenseNotFound)
}

func TestNormalize(t *testing.T) {
	list := earnings.ExpenseList{
		{Name: "no id", Quantity: 2, UnitPrice: 3, LineTotal: 99},
		{ID: "keep", Quantity: -1, UnitPrice: 4},
	}
	list.Normalize()
	assert.NotEmpty(t, list[0].ID)
	assert.Equal(t, 6.0, list[0].LineTotal)
	assert.Equal(t, "keep", list[1].ID)
	assert.Equal(t, 0, list[1].Quantity)
	assert.Equal(t, 0.0, list[1].LineTotal)
}

func TestExpenseTotal_OrderIndependent(t *testing.T) {
	items := []model.ExpenseItem{
		{Quantity: 2, UnitPrice: 10.5},
		{Quantity: 1, UnitPrice: 5},
		{Quantity: 3, UnitPrice: 0.1},
	}
	reversed := []model.ExpenseItem{items[2], items[1], items[0]}
	assert.InDelta(t, earnings.ExpenseTotal(items), earnings.ExpenseTotal(reversed), 1e-9)
}
