// Package promotion decides whether a promotion applies to a bill at a
// given instant and how much it discounts. Everything in here is a pure
// function over its inputs: no I/O, no shared state, safe to call from any
// number of goroutines. The caller supplies the evaluation instant
// explicitly, so "preview this promotion next Tuesday at noon" is the same
// call as a live checkout.
package promotion

import (
	"math"
	"time"

	"bidapos/internal/models"
)

// Ineligibility reason codes. These travel to the client unchanged.
const (
	ReasonInactive          = "inactive"
	ReasonOutOfWindow       = "out-of-window"
	ReasonBelowMinimum      = "below-minimum"
	ReasonNoMatchingProduct = "no-matching-product"
	ReasonMissingContext    = "missing-context"
)

// LineItem is one sellable line of the bill as the matcher sees it.
// Product and Category are opaque identifiers matched against
// ProductRule entries.
type LineItem struct {
	Product  string `json:"product"`
	Category string `json:"category"`
	Qty      int    `json:"qty"`
}

// BillContext is the snapshot of a bill the evaluator reads. PlayMinutes is
// a pointer because retail-only sales legitimately have no play time; a rule
// that needs it then reports missing-context instead of failing some other
// way. Amounts may carry extra apply-to targets beyond the named fields and
// takes precedence over them.
type BillContext struct {
	Subtotal      float64            `json:"subtotal"`
	PlayAmount    float64            `json:"playAmount"`
	ServiceAmount float64            `json:"serviceAmount"`
	PlayMinutes   *int               `json:"playMinutes,omitempty"`
	Items         []LineItem         `json:"items,omitempty"`
	Amounts       map[string]float64 `json:"amounts,omitempty"`
}

// BaseAmount resolves a discount apply-to target to the bill amount it
// discounts. An empty target means the subtotal.
func (b *BillContext) BaseAmount(applyTo string) (float64, bool) {
	if amount, ok := b.Amounts[applyTo]; ok {
		return amount, true
	}
	switch applyTo {
	case "", models.ApplyToSubtotal:
		return b.Subtotal, true
	case models.ApplyToPlay:
		return b.PlayAmount, true
	case models.ApplyToService:
		return b.ServiceAmount, true
	}
	return 0, false
}

// Result is the outcome of evaluating one promotion. Reason is set only
// when Eligible is false.
type Result struct {
	Eligible       bool    `json:"eligible"`
	DiscountAmount float64 `json:"discountAmount"`
	Reason         string  `json:"reason,omitempty"`
}

func ineligible(reason string) *Result {
	return &Result{Eligible: false, Reason: reason}
}

// Evaluate determines whether promo applies to the bill at the instant `at`
// and, if so, its discount amount. A structurally malformed promotion
// (scope without its rule object, invalid day-of-week, reversed time range,
// negative amounts) returns ValidationErrors; every business-rule mismatch
// is a normal ineligible Result with a reason code.
func Evaluate(promo *models.Promotion, bill *BillContext, at time.Time) (*Result, error) {
	if errs := structural(promo); len(errs) > 0 {
		return nil, errs
	}
	if bill == nil {
		bill = &BillContext{}
	}

	if !promo.Active {
		return ineligible(ReasonInactive), nil
	}

	var res *Result
	switch promo.Scope {
	case models.ScopeBill:
		res = checkBillRule(promo.BillRule, bill)
	case models.ScopeTime:
		res = checkTimeRule(promo.TimeRule, bill, at)
	case models.ScopeProduct:
		res = checkProductRule(promo.ProductRule, bill)
	}
	if res != nil {
		return res, nil
	}

	base, ok := bill.BaseAmount(promo.Discount.ApplyTo)
	if !ok {
		return ineligible(ReasonMissingContext), nil
	}

	return &Result{
		Eligible:       true,
		DiscountAmount: discountAmount(promo.Discount, base),
	}, nil
}

func checkBillRule(rule *models.BillRule, bill *BillContext) *Result {
	if bill.Subtotal < rule.MinSubtotal {
		return ineligible(ReasonBelowMinimum)
	}
	if rule.MinServiceAmount != nil && bill.ServiceAmount < *rule.MinServiceAmount {
		return ineligible(ReasonBelowMinimum)
	}
	if rule.MinPlayMinutes != nil {
		if bill.PlayMinutes == nil {
			return ineligible(ReasonMissingContext)
		}
		if *bill.PlayMinutes < *rule.MinPlayMinutes {
			return ineligible(ReasonBelowMinimum)
		}
	}
	return nil
}

func checkTimeRule(rule *models.TimeRule, bill *BillContext, at time.Time) *Result {
	// Lower bound compares dates only: a promotion starting "2025-03-01"
	// is live from that day's midnight whatever time validFrom carries.
	if rule.ValidFrom != nil && at.Before(startOfDay(*rule.ValidFrom)) {
		return ineligible(ReasonOutOfWindow)
	}
	// Upper bound is inclusive through the whole validTo day.
	if rule.ValidTo != nil && !at.Before(startOfDay(*rule.ValidTo).AddDate(0, 0, 1)) {
		return ineligible(ReasonOutOfWindow)
	}

	// 0=Sunday per time.Weekday, same convention the stored rules use.
	day := int(at.Weekday())
	if !containsInt(rule.DaysOfWeek, day) {
		return ineligible(ReasonOutOfWindow)
	}

	if len(rule.TimeRanges) > 0 {
		// Zero-padded "HH:mm" compares correctly as a string.
		current := at.Format("15:04")
		matched := false
		for _, tr := range rule.TimeRanges {
			if tr.From <= current && current <= tr.To {
				matched = true
				break
			}
		}
		if !matched {
			return ineligible(ReasonOutOfWindow)
		}
	}

	if rule.MinMinutes > 0 {
		if bill.PlayMinutes == nil {
			return ineligible(ReasonMissingContext)
		}
		if *bill.PlayMinutes < rule.MinMinutes {
			return ineligible(ReasonBelowMinimum)
		}
	}

	return nil
}

func checkProductRule(rule *models.ProductRule, bill *BillContext) *Result {
	if bill.Items == nil {
		return ineligible(ReasonMissingContext)
	}
	for _, item := range bill.Items {
		if containsString(rule.Products, item.Product) {
			return nil
		}
		if containsString(rule.Categories, item.Category) {
			return nil
		}
		for _, entry := range rule.Combo {
			if entry.Product == item.Product && item.Qty >= entry.Qty {
				return nil
			}
		}
	}
	return ineligible(ReasonNoMatchingProduct)
}

// discountAmount computes the discount against the resolved base amount.
// Caps clamp, they never error: a maxAmount below the computed discount
// simply wins, and a fixed discount never exceeds the amount it discounts.
func discountAmount(d models.Discount, base float64) float64 {
	if base < 0 {
		base = 0
	}

	var amount float64
	switch d.Type {
	case models.DiscountPercentage:
		amount = math.Round(base * d.Value / 100)
	case models.DiscountFixedAmount:
		amount = d.Value
	}

	if amount > base && d.Type == models.DiscountFixedAmount {
		amount = base
	}
	if d.MaxAmount != nil && amount > *d.MaxAmount {
		amount = *d.MaxAmount
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
