package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PromotionScope string
type DiscountType string

const (
	ScopeBill    PromotionScope = "bill"
	ScopeTime    PromotionScope = "time"
	ScopeProduct PromotionScope = "product"

	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixedAmount"
)

// Discount apply-to targets. The evaluator treats the value opaquely; these
// are the targets the bill builder knows how to resolve.
const (
	ApplyToSubtotal = "subtotal"
	ApplyToPlay     = "play"
	ApplyToService  = "service"
)

type Promotion struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code        string             `json:"code" bson:"code"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Scope       PromotionScope     `json:"scope" bson:"scope"`
	ApplyOrder  int                `json:"applyOrder" bson:"apply_order"`
	Active      bool               `json:"active" bson:"active"`
	Stackable   bool               `json:"stackable" bson:"stackable"`
	Discount    Discount           `json:"discount" bson:"discount"`
	BillRule    *BillRule          `json:"billRule,omitempty" bson:"bill_rule,omitempty"`
	TimeRule    *TimeRule          `json:"timeRule,omitempty" bson:"time_rule,omitempty"`
	ProductRule *ProductRule       `json:"productRule,omitempty" bson:"product_rule,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

type Discount struct {
	Type      DiscountType `json:"type" bson:"type"`
	Value     float64      `json:"value" bson:"value"`
	ApplyTo   string       `json:"applyTo" bson:"apply_to"`
	MaxAmount *float64     `json:"maxAmount,omitempty" bson:"max_amount,omitempty"`
}

type BillRule struct {
	MinSubtotal      float64  `json:"minSubtotal" bson:"min_subtotal"`
	MinServiceAmount *float64 `json:"minServiceAmount,omitempty" bson:"min_service_amount,omitempty"`
	MinPlayMinutes   *int     `json:"minPlayMinutes,omitempty" bson:"min_play_minutes,omitempty"`
}

// TimeRule day-of-week values follow time.Weekday: 0=Sunday .. 6=Saturday,
// which is also what the mobile client has always stored.
type TimeRule struct {
	ValidFrom  *time.Time  `json:"validFrom,omitempty" bson:"valid_from,omitempty"`
	ValidTo    *time.Time  `json:"validTo,omitempty" bson:"valid_to,omitempty"`
	DaysOfWeek []int       `json:"daysOfWeek" bson:"days_of_week"`
	TimeRanges []TimeRange `json:"timeRanges" bson:"time_ranges"`
	MinMinutes int         `json:"minMinutes" bson:"min_minutes"`
}

// TimeRange bounds are zero-padded "HH:mm" strings, inclusive on both ends.
type TimeRange struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

type ProductRule struct {
	Categories []string     `json:"categories" bson:"categories"`
	Products   []string     `json:"products" bson:"products"`
	Combo      []ComboEntry `json:"combo" bson:"combo"`
}

type ComboEntry struct {
	Product string `json:"product" bson:"product"`
	Qty     int    `json:"qty" bson:"qty"`
}

// HasRule reports whether the rule object matching the promotion's scope is
// present.
func (p *Promotion) HasRule() bool {
	switch p.Scope {
	case ScopeBill:
		return p.BillRule != nil
	case ScopeTime:
		return p.TimeRule != nil
	case ScopeProduct:
		return p.ProductRule != nil
	}
	return false
}
