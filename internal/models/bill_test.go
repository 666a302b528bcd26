package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayAmountChargesStartedHours(t *testing.T) {
	tests := []struct {
		minutes int
		rate    float64
		want    float64
	}{
		{minutes: 60, rate: 40000, want: 40000},
		{minutes: 61, rate: 40000, want: 80000},
		{minutes: 90, rate: 40000, want: 80000},
		{minutes: 1, rate: 40000, want: 40000},
		{minutes: 0, rate: 40000, want: 0},
		{minutes: -5, rate: 40000, want: 0},
		{minutes: 120, rate: 0, want: 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, PlayAmount(tc.minutes, tc.rate), "minutes=%d rate=%v", tc.minutes, tc.rate)
	}
}

func TestBillRecalculate(t *testing.T) {
	bill := &Bill{
		Items: []BillItem{
			{Type: BillItemPlay, Minutes: 75, RatePerHour: 40000, Amount: 80000},
			{Type: BillItemProduct, Qty: 2, PriceSnapshot: 15000, Amount: 30000},
		},
		Discounts: []BillDiscount{{Code: "A", Amount: 11000}},
		Surcharge: 5000,
	}
	bill.Recalculate()

	assert.Equal(t, float64(110000), bill.Subtotal)
	assert.Equal(t, float64(104000), bill.Total)
	assert.Equal(t, float64(80000), bill.PlayTotal())
	assert.Equal(t, float64(30000), bill.ServiceTotal())

	minutes := bill.PlayMinutes()
	if assert.NotNil(t, minutes) {
		assert.Equal(t, 75, *minutes)
	}
}

func TestBillRecalculateNeverNegative(t *testing.T) {
	bill := &Bill{
		Items:     []BillItem{{Type: BillItemProduct, Amount: 10000}},
		Discounts: []BillDiscount{{Code: "BIG", Amount: 50000}},
	}
	bill.Recalculate()
	assert.Zero(t, bill.Total)
}

func TestPlayMinutesNilForRetailOnlyBill(t *testing.T) {
	bill := &Bill{Items: []BillItem{{Type: BillItemProduct, Amount: 20000}}}
	assert.Nil(t, bill.PlayMinutes())
}
