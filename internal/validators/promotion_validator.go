package validators

import (
	"time"
)

type DiscountRequest struct {
	Type      string   `json:"type" validate:"required,oneof=percentage fixedAmount"`
	Value     float64  `json:"value" validate:"required,gt=0"`
	ApplyTo   string   `json:"applyTo" validate:"required,min=1,max=50"`
	MaxAmount *float64 `json:"maxAmount" validate:"omitempty,gt=0"`
}

type BillRuleRequest struct {
	MinSubtotal      float64  `json:"minSubtotal" validate:"min=0"`
	MinServiceAmount *float64 `json:"minServiceAmount" validate:"omitempty,min=0"`
	MinPlayMinutes   *int     `json:"minPlayMinutes" validate:"omitempty,min=0"`
}

type TimeRangeRequest struct {
	From string `json:"from" validate:"required,time_of_day"`
	To   string `json:"to" validate:"required,time_of_day"`
}

type TimeRuleRequest struct {
	ValidFrom  *time.Time         `json:"validFrom"`
	ValidTo    *time.Time         `json:"validTo"`
	DaysOfWeek []int              `json:"daysOfWeek" validate:"omitempty,max=7,dive,min=0,max=6"`
	TimeRanges []TimeRangeRequest `json:"timeRanges" validate:"omitempty,dive"`
	MinMinutes int                `json:"minMinutes" validate:"min=0"`
}

type ComboEntryRequest struct {
	Product string `json:"product" validate:"required,min=1,max=100"`
	Qty     int    `json:"qty" validate:"required,min=1"`
}

type ProductRuleRequest struct {
	Categories []string            `json:"categories" validate:"omitempty,dive,min=1,max=100"`
	Products   []string            `json:"products" validate:"omitempty,dive,min=1,max=100"`
	Combo      []ComboEntryRequest `json:"combo" validate:"omitempty,dive"`
}

type CreatePromotionRequest struct {
	Code        string              `json:"code" validate:"required,promo_code"`
	Name        string              `json:"name" validate:"required,min=1,max=200"`
	Description string              `json:"description" validate:"omitempty,max=1000"`
	Scope       string              `json:"scope" validate:"required,oneof=bill time product"`
	ApplyOrder  int                 `json:"applyOrder" validate:"min=0"`
	Active      bool                `json:"active"`
	Stackable   bool                `json:"stackable"`
	Discount    DiscountRequest     `json:"discount" validate:"required"`
	BillRule    *BillRuleRequest    `json:"billRule" validate:"omitempty"`
	TimeRule    *TimeRuleRequest    `json:"timeRule" validate:"omitempty"`
	ProductRule *ProductRuleRequest `json:"productRule" validate:"omitempty"`
}

// UpdatePromotionRequest leaves code and scope out on purpose: both are
// immutable once a promotion exists, so a new rule set means a new code.
type UpdatePromotionRequest struct {
	Name        *string             `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string             `json:"description" validate:"omitempty,max=1000"`
	ApplyOrder  *int                `json:"applyOrder" validate:"omitempty,min=0"`
	Active      *bool               `json:"active"`
	Stackable   *bool               `json:"stackable"`
	Discount    *DiscountRequest    `json:"discount" validate:"omitempty"`
	BillRule    *BillRuleRequest    `json:"billRule" validate:"omitempty"`
	TimeRule    *TimeRuleRequest    `json:"timeRule" validate:"omitempty"`
	ProductRule *ProductRuleRequest `json:"productRule" validate:"omitempty"`
}

type LineItemRequest struct {
	Product  string `json:"product" validate:"required,min=1,max=100"`
	Category string `json:"category" validate:"omitempty,max=100"`
	Qty      int    `json:"qty" validate:"required,min=1"`
}

type BillContextRequest struct {
	Subtotal      float64            `json:"subtotal" validate:"min=0"`
	PlayAmount    float64            `json:"playAmount" validate:"min=0"`
	ServiceAmount float64            `json:"serviceAmount" validate:"min=0"`
	PlayMinutes   *int               `json:"playMinutes" validate:"omitempty,min=0"`
	Items         []LineItemRequest  `json:"items" validate:"omitempty,dive"`
	Amounts       map[string]float64 `json:"amounts" validate:"omitempty"`
}

type PreviewPromotionRequest struct {
	Bill BillContextRequest `json:"bill" validate:"required"`
	At   *time.Time         `json:"at"`
}

type QuoteRequest struct {
	Codes []string           `json:"codes" validate:"omitempty,max=20,dive,promo_code"`
	Bill  BillContextRequest `json:"bill" validate:"required"`
	At    *time.Time         `json:"at"`
}

func ValidateCreatePromotion(req *CreatePromotionRequest) ValidationErrors {
	errors := ValidateStruct(req)

	switch req.Scope {
	case "bill":
		if req.BillRule == nil {
			errors = append(errors, ValidationError{
				Field:   "billRule",
				Message: "Bill promotions require a billRule",
			})
		}
	case "time":
		if req.TimeRule == nil {
			errors = append(errors, ValidationError{
				Field:   "timeRule",
				Message: "Time promotions require a timeRule",
			})
		}
	case "product":
		if req.ProductRule == nil {
			errors = append(errors, ValidationError{
				Field:   "productRule",
				Message: "Product promotions require a productRule",
			})
		}
	}

	// Rule objects are exclusive to their scope
	if req.Scope != "bill" && req.BillRule != nil {
		errors = append(errors, ValidationError{
			Field:   "billRule",
			Message: "billRule is only valid for bill promotions",
		})
	}
	if req.Scope != "time" && req.TimeRule != nil {
		errors = append(errors, ValidationError{
			Field:   "timeRule",
			Message: "timeRule is only valid for time promotions",
		})
	}
	if req.Scope != "product" && req.ProductRule != nil {
		errors = append(errors, ValidationError{
			Field:   "productRule",
			Message: "productRule is only valid for product promotions",
		})
	}

	if req.Discount.Type == "percentage" && req.Discount.Value > 100 {
		errors = append(errors, ValidationError{
			Field:   "discount.value",
			Message: "Percentage discount cannot exceed 100",
		})
	}

	if req.TimeRule != nil && req.TimeRule.ValidFrom != nil && req.TimeRule.ValidTo != nil {
		if req.TimeRule.ValidTo.Before(*req.TimeRule.ValidFrom) {
			errors = append(errors, ValidationError{
				Field:   "timeRule.validTo",
				Message: "validTo must not be before validFrom",
			})
		}
	}

	return errors
}

func ValidateUpdatePromotion(req *UpdatePromotionRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.Discount != nil && req.Discount.Type == "percentage" && req.Discount.Value > 100 {
		errors = append(errors, ValidationError{
			Field:   "discount.value",
			Message: "Percentage discount cannot exceed 100",
		})
	}

	if req.TimeRule != nil && req.TimeRule.ValidFrom != nil && req.TimeRule.ValidTo != nil {
		if req.TimeRule.ValidTo.Before(*req.TimeRule.ValidFrom) {
			errors = append(errors, ValidationError{
				Field:   "timeRule.validTo",
				Message: "validTo must not be before validFrom",
			})
		}
	}

	return errors
}

func ValidateQuote(req *QuoteRequest) ValidationErrors {
	errors := ValidateStruct(req)

	seen := make(map[string]bool, len(req.Codes))
	for _, code := range req.Codes {
		if seen[code] {
			errors = append(errors, ValidationError{
				Field:   "codes",
				Message: "Duplicate promotion code: " + code,
			})
		}
		seen[code] = true
	}

	return errors
}
