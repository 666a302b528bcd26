package promotion

import (
	"testing"
	"time"

	"bidapos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func billPromo(minSubtotal float64) *models.Promotion {
	return &models.Promotion{
		Code:       "BILL10",
		Scope:      models.ScopeBill,
		Active:     true,
		Stackable:  true,
		ApplyOrder: 10,
		Discount:   models.Discount{Type: models.DiscountPercentage, Value: 10, ApplyTo: models.ApplyToSubtotal},
		BillRule:   &models.BillRule{MinSubtotal: minSubtotal},
	}
}

// Mondays and Saturdays used across the time-rule tests.
var (
	monday1215   = time.Date(2025, 1, 6, 12, 15, 0, 0, time.UTC)
	monday1231   = time.Date(2025, 1, 6, 12, 31, 0, 0, time.UTC)
	saturday1215 = time.Date(2025, 1, 4, 12, 15, 0, 0, time.UTC)
)

func weekdayPromo() *models.Promotion {
	return &models.Promotion{
		Code:      "LUNCH",
		Scope:     models.ScopeTime,
		Active:    true,
		Stackable: true,
		Discount:  models.Discount{Type: models.DiscountPercentage, Value: 15, ApplyTo: models.ApplyToSubtotal},
		TimeRule: &models.TimeRule{
			DaysOfWeek: []int{1, 2, 3, 4, 5},
			TimeRanges: []models.TimeRange{{From: "12:00", To: "12:30"}},
		},
	}
}

func TestEvaluateInactivePromotion(t *testing.T) {
	promo := billPromo(0)
	promo.Active = false

	res, err := Evaluate(promo, &BillContext{Subtotal: 1000000}, monday1215)
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, ReasonInactive, res.Reason)
	assert.Zero(t, res.DiscountAmount)
}

func TestEvaluateBillRuleMinSubtotalBoundary(t *testing.T) {
	promo := billPromo(100000)

	res, err := Evaluate(promo, &BillContext{Subtotal: 100000}, monday1215)
	require.NoError(t, err)
	assert.True(t, res.Eligible, "exact minimum is eligible")

	res, err = Evaluate(promo, &BillContext{Subtotal: 99999}, monday1215)
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, ReasonBelowMinimum, res.Reason)
}

func TestEvaluateBillRuleOptionalMinimums(t *testing.T) {
	promo := billPromo(0)
	promo.BillRule.MinServiceAmount = floatPtr(50000)
	promo.BillRule.MinPlayMinutes = intPtr(60)

	bill := &BillContext{Subtotal: 200000, ServiceAmount: 50000, PlayMinutes: intPtr(60)}
	res, err := Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.True(t, res.Eligible)

	bill.ServiceAmount = 49999
	res, err = Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.Equal(t, ReasonBelowMinimum, res.Reason)

	bill.ServiceAmount = 50000
	bill.PlayMinutes = intPtr(59)
	res, err = Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.Equal(t, ReasonBelowMinimum, res.Reason)
}

func TestEvaluateBillRuleMissingPlayMinutes(t *testing.T) {
	promo := billPromo(0)
	promo.BillRule.MinPlayMinutes = intPtr(30)

	// Retail-only sale: no play data at all.
	res, err := Evaluate(promo, &BillContext{Subtotal: 80000}, monday1215)
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, ReasonMissingContext, res.Reason)
}

func TestEvaluateTimeRuleDayOfWeek(t *testing.T) {
	promo := weekdayPromo()
	bill := &BillContext{Subtotal: 100000}

	res, err := Evaluate(promo, bill, saturday1215)
	require.NoError(t, err)
	assert.False(t, res.Eligible, "Saturday is outside Mon-Fri regardless of time")
	assert.Equal(t, ReasonOutOfWindow, res.Reason)

	res, err = Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.True(t, res.Eligible)
}

func TestEvaluateTimeRuleTimeRanges(t *testing.T) {
	promo := weekdayPromo()
	bill := &BillContext{Subtotal: 100000}

	res, err := Evaluate(promo, bill, monday1231)
	require.NoError(t, err)
	assert.False(t, res.Eligible, "12:31 is past the 12:30 inclusive bound")
	assert.Equal(t, ReasonOutOfWindow, res.Reason)

	// Both bounds inclusive.
	for _, at := range []time.Time{
		time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 6, 12, 30, 59, 0, time.UTC),
	} {
		res, err = Evaluate(promo, bill, at)
		require.NoError(t, err)
		assert.True(t, res.Eligible, "at %v", at)
	}
}

func TestEvaluateTimeRuleValidityWindow(t *testing.T) {
	validTo := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	promo := weekdayPromo()
	promo.TimeRule = &models.TimeRule{
		ValidFrom:  &validTo, // single-day window
		ValidTo:    &validTo,
		DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6},
	}
	bill := &BillContext{Subtotal: 100000}

	// 2025-01-10 is a Friday.
	res, err := Evaluate(promo, bill, time.Date(2025, 1, 10, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, res.Eligible, "validTo is inclusive through end of day")

	res, err = Evaluate(promo, bill, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, ReasonOutOfWindow, res.Reason)
}

func TestEvaluateTimeRuleValidFromIgnoresTimeOfDay(t *testing.T) {
	// validFrom carries 15:00 but only the date matters for the lower bound.
	validFrom := time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC)
	promo := weekdayPromo()
	promo.TimeRule = &models.TimeRule{
		ValidFrom:  &validFrom,
		DaysOfWeek: []int{0, 1, 2, 3, 4, 5, 6},
	}
	bill := &BillContext{Subtotal: 100000}

	res, err := Evaluate(promo, bill, time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, res.Eligible)

	res, err = Evaluate(promo, bill, time.Date(2025, 1, 5, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, ReasonOutOfWindow, res.Reason)
}

func TestEvaluateTimeRuleMinMinutes(t *testing.T) {
	promo := weekdayPromo()
	promo.TimeRule.MinMinutes = 90
	bill := &BillContext{Subtotal: 100000, PlayMinutes: intPtr(90)}

	res, err := Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.True(t, res.Eligible)

	bill.PlayMinutes = intPtr(89)
	res, err = Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.Equal(t, ReasonBelowMinimum, res.Reason)

	bill.PlayMinutes = nil
	res, err = Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.Equal(t, ReasonMissingContext, res.Reason)
}

func TestEvaluateProductRule(t *testing.T) {
	promo := &models.Promotion{
		Code:      "COMBO",
		Scope:     models.ScopeProduct,
		Active:    true,
		Stackable: true,
		Discount:  models.Discount{Type: models.DiscountFixedAmount, Value: 10000, ApplyTo: models.ApplyToService},
		ProductRule: &models.ProductRule{
			Categories: []string{"drink"},
			Combo:      []models.ComboEntry{{Product: "beer-333", Qty: 6}},
		},
	}

	tests := []struct {
		name     string
		items    []LineItem
		eligible bool
		reason   string
	}{
		{
			name:     "category match",
			items:    []LineItem{{Product: "coffee-sua", Category: "drink", Qty: 1}},
			eligible: true,
		},
		{
			name:     "combo quantity met",
			items:    []LineItem{{Product: "beer-333", Category: "beer", Qty: 6}},
			eligible: true,
		},
		{
			name:   "combo quantity short",
			items:  []LineItem{{Product: "beer-333", Category: "beer", Qty: 5}},
			reason: ReasonNoMatchingProduct,
		},
		{
			name:   "no match",
			items:  []LineItem{{Product: "snack-01", Category: "food", Qty: 2}},
			reason: ReasonNoMatchingProduct,
		},
		{
			name:   "no line items supplied",
			items:  nil,
			reason: ReasonMissingContext,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bill := &BillContext{Subtotal: 120000, ServiceAmount: 120000, Items: tc.items}
			res, err := Evaluate(promo, bill, monday1215)
			require.NoError(t, err)
			assert.Equal(t, tc.eligible, res.Eligible)
			if !tc.eligible {
				assert.Equal(t, tc.reason, res.Reason)
			}
		})
	}
}

func TestEvaluatePercentageDiscount(t *testing.T) {
	promo := billPromo(0)
	bill := &BillContext{Subtotal: 200000}

	res, err := Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.Equal(t, float64(20000), res.DiscountAmount)

	promo.Discount.MaxAmount = floatPtr(15000)
	res, err = Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.Equal(t, float64(15000), res.DiscountAmount, "maxAmount caps the computed discount")
}

func TestEvaluateFixedDiscountClampedToBase(t *testing.T) {
	promo := billPromo(0)
	promo.Discount = models.Discount{Type: models.DiscountFixedAmount, Value: 50000, ApplyTo: models.ApplyToService}

	res, err := Evaluate(promo, &BillContext{Subtotal: 80000, ServiceAmount: 30000}, monday1215)
	require.NoError(t, err)
	assert.Equal(t, float64(30000), res.DiscountAmount, "a fixed discount never exceeds its base")
}

func TestEvaluateUnknownApplyTo(t *testing.T) {
	promo := billPromo(0)
	promo.Discount.ApplyTo = "loyalty-points"

	res, err := Evaluate(promo, &BillContext{Subtotal: 100000}, monday1215)
	require.NoError(t, err)
	assert.False(t, res.Eligible)
	assert.Equal(t, ReasonMissingContext, res.Reason)

	// The caller can expose arbitrary apply-to targets through Amounts.
	bill := &BillContext{Subtotal: 100000, Amounts: map[string]float64{"loyalty-points": 40000}}
	res, err = Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.True(t, res.Eligible)
	assert.Equal(t, float64(4000), res.DiscountAmount)
}

func TestEvaluateMalformedPromotion(t *testing.T) {
	promo := billPromo(0)
	promo.BillRule = nil // scope without its rule object

	res, err := Evaluate(promo, &BillContext{Subtotal: 100000}, monday1215)
	assert.Nil(t, res)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs)
}

func TestEvaluateRejectsRuleFromAnotherScope(t *testing.T) {
	promo := billPromo(0)
	promo.TimeRule = &models.TimeRule{
		DaysOfWeek: []int{1, 2, 3, 4, 5},
		TimeRanges: []models.TimeRange{{From: "12:00", To: "12:30"}},
	}

	res, err := Evaluate(promo, &BillContext{Subtotal: 100000}, monday1215)
	assert.Nil(t, res)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields(), "timeRule")
}

func TestEvaluateIsIdempotent(t *testing.T) {
	promo := weekdayPromo()
	promo.Discount.MaxAmount = floatPtr(12000)
	bill := &BillContext{Subtotal: 150000, PlayMinutes: intPtr(45)}

	first, err := Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	second, err := Evaluate(promo, bill, monday1215)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
