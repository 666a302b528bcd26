package promotion

import (
	"testing"

	"bidapos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTimePromo() *models.Promotion {
	return &models.Promotion{
		Code:   "HAPPYHOUR",
		Name:   "Happy hour",
		Scope:  models.ScopeTime,
		Active: true,
		Discount: models.Discount{
			Type:    models.DiscountPercentage,
			Value:   20,
			ApplyTo: models.ApplyToPlay,
		},
		TimeRule: &models.TimeRule{
			DaysOfWeek: []int{1, 2, 3, 4, 5},
			TimeRanges: []models.TimeRange{{From: "14:00", To: "17:00"}},
		},
	}
}

func TestValidateAcceptsWellFormedPromotion(t *testing.T) {
	assert.NoError(t, Validate(validTimePromo()))
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Promotion)
		field  string
	}{
		{
			name:   "missing code",
			mutate: func(p *models.Promotion) { p.Code = "" },
			field:  "code",
		},
		{
			name:   "unknown scope",
			mutate: func(p *models.Promotion) { p.Scope = "loyalty" },
			field:  "scope",
		},
		{
			name:   "scope without rule object",
			mutate: func(p *models.Promotion) { p.TimeRule = nil },
			field:  "timeRule",
		},
		{
			name:   "percentage above 100",
			mutate: func(p *models.Promotion) { p.Discount.Value = 150 },
			field:  "discount.value",
		},
		{
			name:   "negative discount value",
			mutate: func(p *models.Promotion) { p.Discount.Value = -5 },
			field:  "discount.value",
		},
		{
			name:   "negative max amount",
			mutate: func(p *models.Promotion) { p.Discount.MaxAmount = floatPtr(-1) },
			field:  "discount.maxAmount",
		},
		{
			name:   "unknown discount type",
			mutate: func(p *models.Promotion) { p.Discount.Type = "bogo" },
			field:  "discount.type",
		},
		{
			name:   "empty days of week",
			mutate: func(p *models.Promotion) { p.TimeRule.DaysOfWeek = nil },
			field:  "timeRule.daysOfWeek",
		},
		{
			name:   "day of week out of range",
			mutate: func(p *models.Promotion) { p.TimeRule.DaysOfWeek = []int{1, 7} },
			field:  "timeRule.daysOfWeek",
		},
		{
			name:   "reversed time range",
			mutate: func(p *models.Promotion) { p.TimeRule.TimeRanges = []models.TimeRange{{From: "17:00", To: "14:00"}} },
			field:  "timeRule.timeRanges[0]",
		},
		{
			name:   "unpadded time range bound",
			mutate: func(p *models.Promotion) { p.TimeRule.TimeRanges = []models.TimeRange{{From: "9:00", To: "14:00"}} },
			field:  "timeRule.timeRanges[0]",
		},
		{
			name:   "negative min minutes",
			mutate: func(p *models.Promotion) { p.TimeRule.MinMinutes = -10 },
			field:  "timeRule.minMinutes",
		},
		{
			name:   "bill rule on a time promotion",
			mutate: func(p *models.Promotion) { p.BillRule = &models.BillRule{MinSubtotal: 100} },
			field:  "billRule",
		},
		{
			name:   "product rule on a time promotion",
			mutate: func(p *models.Promotion) { p.ProductRule = &models.ProductRule{Categories: []string{"drink"}} },
			field:  "productRule",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			promo := validTimePromo()
			tc.mutate(promo)

			err := Validate(promo)
			require.Error(t, err)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.Fields(), tc.field)
		})
	}
}

func TestValidateValidFromAfterValidTo(t *testing.T) {
	promo := validTimePromo()
	from := monday1231
	to := monday1215
	promo.TimeRule.ValidFrom = &from
	promo.TimeRule.ValidTo = &to

	err := Validate(promo)
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields(), "timeRule.validFrom")
}

func TestValidateProductRule(t *testing.T) {
	promo := validTimePromo()
	promo.Scope = models.ScopeProduct
	promo.TimeRule = nil
	promo.ProductRule = &models.ProductRule{}

	err := Validate(promo)
	require.Error(t, err)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields(), "productRule")

	promo.ProductRule.Combo = []models.ComboEntry{{Product: "beer-333", Qty: 0}}
	err = Validate(promo)
	require.Error(t, err)
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields(), "productRule.combo[0].qty")

	promo.ProductRule.Combo[0].Qty = 2
	assert.NoError(t, Validate(promo))
}
