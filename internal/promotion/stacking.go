package promotion

import (
	"fmt"
	"sort"
	"time"

	"bidapos/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application is one promotion applied to a bill with the amount it took
// off.
type Application struct {
	PromotionID primitive.ObjectID `json:"promotionId"`
	Code        string             `json:"code"`
	Name        string             `json:"name"`
	Amount      float64            `json:"amount"`
}

// Skipped explains why an offered promotion did not end up on the bill.
type Skipped struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Reason code for eligible stackables displaced by a non-stackable winner.
const ReasonExclusiveApplied = "exclusive-applied"

// StackResult is the outcome of applying a set of promotions to one bill.
type StackResult struct {
	Applications  []Application `json:"applications"`
	TotalDiscount float64       `json:"totalDiscount"`
	Skipped       []Skipped     `json:"skipped,omitempty"`
}

// Apply evaluates every candidate promotion against the bill at the instant
// `at` and resolves stacking:
//
//   - ineligible promotions are skipped with their reason;
//   - if any eligible promotion is non-stackable, the one with the lowest
//     applyOrder (ties broken by code) applies alone, against the
//     undiscounted bill;
//   - otherwise all eligible stackable promotions apply in ascending
//     (applyOrder, code) order, each one discounting the amount left by the
//     promotions before it.
//
// The ordering makes a multi-promotion bill deterministic: the same inputs
// always produce the same applications in the same sequence. A malformed
// promotion anywhere in the candidate set fails the whole call.
func Apply(candidates []*models.Promotion, bill *BillContext, at time.Time) (*StackResult, error) {
	if bill == nil {
		bill = &BillContext{}
	}

	var eligible []*models.Promotion
	result := &StackResult{Applications: []Application{}}

	for _, promo := range candidates {
		res, err := Evaluate(promo, bill, at)
		if err != nil {
			return nil, fmt.Errorf("promotion %s: %w", promo.Code, err)
		}
		if !res.Eligible {
			result.Skipped = append(result.Skipped, Skipped{Code: promo.Code, Reason: res.Reason})
			continue
		}
		eligible = append(eligible, promo)
	}

	sortByOrder(eligible)

	// A non-stackable promotion is exclusive: the highest-priority one wins
	// and everything else is dropped.
	if winner := firstNonStackable(eligible); winner != nil {
		for _, promo := range eligible {
			if promo != winner {
				result.Skipped = append(result.Skipped, Skipped{Code: promo.Code, Reason: ReasonExclusiveApplied})
			}
		}
		eligible = []*models.Promotion{winner}
	}

	remaining := newRemaining(bill)
	for _, promo := range eligible {
		base := remaining.base(promo.Discount.ApplyTo)
		amount := discountAmount(promo.Discount, base)
		remaining.deduct(promo.Discount.ApplyTo, amount)

		result.Applications = append(result.Applications, Application{
			PromotionID: promo.ID,
			Code:        promo.Code,
			Name:        promo.Name,
			Amount:      amount,
		})
		result.TotalDiscount += amount
	}

	return result, nil
}

func sortByOrder(promos []*models.Promotion) {
	sort.SliceStable(promos, func(i, j int) bool {
		if promos[i].ApplyOrder != promos[j].ApplyOrder {
			return promos[i].ApplyOrder < promos[j].ApplyOrder
		}
		return promos[i].Code < promos[j].Code
	})
}

func firstNonStackable(promos []*models.Promotion) *models.Promotion {
	for _, promo := range promos {
		if !promo.Stackable {
			return promo
		}
	}
	return nil
}

// remaining tracks bill amounts as sequential discounts are taken off.
// Play and service are components of the subtotal, so deducting from either
// also shrinks the subtotal.
type remaining struct {
	subtotal float64
	play     float64
	service  float64
	extra    map[string]float64
}

func newRemaining(bill *BillContext) *remaining {
	r := &remaining{
		subtotal: bill.Subtotal,
		play:     bill.PlayAmount,
		service:  bill.ServiceAmount,
	}
	if len(bill.Amounts) > 0 {
		r.extra = make(map[string]float64, len(bill.Amounts))
		for k, v := range bill.Amounts {
			r.extra[k] = v
		}
	}
	return r
}

func (r *remaining) base(applyTo string) float64 {
	if amount, ok := r.extra[applyTo]; ok {
		return amount
	}
	switch applyTo {
	case models.ApplyToPlay:
		return r.play
	case models.ApplyToService:
		return r.service
	}
	return r.subtotal
}

func (r *remaining) deduct(applyTo string, amount float64) {
	if _, ok := r.extra[applyTo]; ok {
		r.extra[applyTo] = clampZero(r.extra[applyTo] - amount)
		return
	}
	switch applyTo {
	case models.ApplyToPlay:
		r.play = clampZero(r.play - amount)
		r.subtotal = clampZero(r.subtotal - amount)
	case models.ApplyToService:
		r.service = clampZero(r.service - amount)
		r.subtotal = clampZero(r.subtotal - amount)
	default:
		r.subtotal = clampZero(r.subtotal - amount)
	}
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
