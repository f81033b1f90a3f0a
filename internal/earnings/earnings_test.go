package earnings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/hourly-rate-calculator/internal/earnings"
	"github.com/Tiliavir/hourly-rate-calculator/internal/model"
	"github.com/Tiliavir/hourly-rate-calculator/internal/timecalc"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]float64{
		"25":     25,
		" 10.5 ": 10.5,
		"":       0,
		"abc":    0,
		"-4":     0,
		"NaN":    0,
		"1e400":  0,
		"25/hr":  25,
		"25 USD": 25,
		"1_0":    1,
		"$25":    0,
	}
	for in, want := range cases {
		assert.Equal(t, want, earnings.ParseAmount(in), "input=%q", in)
	}
}

func TestParseQuantity(t *testing.T) {
	cases := map[string]int{
		"3":     3,
		"2.9":   2,
		"":      0,
		"-1":    0,
		"x":     0,
		"3 pcs": 3,
	}
	for in, want := range cases {
		assert.Equal(t, want, earnings.ParseQuantity(in), "input=%q", in)
	}
}

func TestComputeTotals_NetIsGrossPlusExpenses(t *testing.T) {
	cases := []struct {
		rate  float64
		hours timecalc.Hours
		items []model.ExpenseItem
	}{
		{0, 0, nil},
		{25, 8, nil},
		{40, 7.25, []model.ExpenseItem{{Quantity: 2, UnitPrice: 10.5}}},
		{0, 3, []model.ExpenseItem{{Quantity: 1, UnitPrice: 5}, {Quantity: 4, UnitPrice: 0.25}}},
		{99.99, 0.5, []model.ExpenseItem{{Quantity: 0, UnitPrice: 1000}}},
	}
	for _, tc := range cases {
		got := earnings.ComputeTotals(earnings.Inputs{HourlyRate: tc.rate, Hours: tc.hours, Expenses: tc.items})
		var sum float64
		for _, it := range tc.items {
			sum += float64(it.Quantity) * it.UnitPrice
		}
		assert.InDelta(t, tc.rate*float64(tc.hours), got.GrossIncome, 1e-9)
		assert.InDelta(t, sum, got.ExpenseTotal, 1e-9)
		assert.InDelta(t, tc.rate*float64(tc.hours)+sum, got.NetIncome, 1e-9)
	}
}

func TestExpenseAggregationAndRemoval(t *testing.T) {
	var list earnings.ExpenseList
	list.Add("Parking", 2, 10.5)
	second := list.Add("Coffee", 1, 5)

	assert.InDelta(t, 26.0, earnings.ExpenseTotal(list), 1e-9)

	require.True(t, list.Remove(second.ID))
	assert.InDelta(t, 21.0, earnings.ExpenseTotal(list), 1e-9)
}

func TestEvaluate_MalformedInputDegradesToZero(t *testing.T) {
	s := &model.Sheet{
		HourlyRate:   "",
		DurationText: "abc",
		Expenses:     []model.ExpenseItem{{ID: "a", Quantity: 3, UnitPrice: 2, LineTotal: 6}},
	}
	snap := earnings.Evaluate(s)
	assert.Equal(t, timecalc.Hours(0), snap.Hours)
	assert.Equal(t, 0.0, snap.Totals.GrossIncome)
	assert.InDelta(t, 6.0, snap.Totals.NetIncome, 1e-9)
	assert.Equal(t, "abc", s.DurationText, "manual text must not be rewritten")
}

func TestEvaluate_StartEndRewritesDuration(t *testing.T) {
	s := &model.Sheet{HourlyRate: "30", StartTime: "22:00", EndTime: "06:00", DurationText: "2"}
	snap := earnings.Evaluate(s)

	assert.True(t, snap.FromClock)
	assert.True(t, snap.Rewritten)
	assert.Equal(t, "8:00", s.DurationText)
	assert.InDelta(t, 240.0, snap.Totals.NetIncome, 1e-9)

	again := earnings.Evaluate(s)
	assert.False(t, again.Rewritten)
	assert.Equal(t, "8:00", s.DurationText)
	assert.Equal(t, snap.Totals, again.Totals)
}

func TestEvaluate_TrailingUnitsKeepLeadingNumber(t *testing.T) {
	s := &model.Sheet{HourlyRate: "40/h", DurationText: "7.5h"}
	snap := earnings.Evaluate(s)
	assert.InDelta(t, 7.5, float64(snap.Hours), 1e-9)
	assert.InDelta(t, 300.0, snap.Totals.NetIncome, 1e-9)
	assert.Equal(t, "7.5h", s.DurationText)
}

func TestEvaluate_DecimalOnly(t *testing.T) {
	s := &model.Sheet{HourlyRate: "20", DurationText: "7.25"}
	snap := earnings.Evaluate(s)
	assert.InDelta(t, 7.25, float64(snap.Hours), 1e-9)
	assert.InDelta(t, 145.0, snap.Totals.GrossIncome, 1e-9)
	assert.False(t, snap.FromClock)
}
