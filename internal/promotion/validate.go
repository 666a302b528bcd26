package promotion

import (
	"fmt"
	"regexp"

	"bidapos/internal/models"
)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Validate runs the full creation-time validation of a promotion
// definition. It returns ValidationErrors listing every violation, or nil.
//
// Evaluate re-runs the structural subset of these checks on every call; the
// creation-only rules (code required, percentage capped at 100) are not
// re-enforced at evaluation time.
func Validate(p *models.Promotion) error {
	errs := structural(p)

	if p.Code == "" {
		errs = append(errs, ValidationError{Field: "code", Message: "required"})
	}
	if p.Discount.Type == models.DiscountPercentage && p.Discount.Value > 100 {
		errs = append(errs, ValidationError{Field: "discount.value", Message: "percentage cannot exceed 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// structural checks the invariants every evaluation relies on: a known
// scope with its matching rule object, non-negative amounts, day-of-week
// values in 0..6 and well-ordered "HH:mm" ranges.
func structural(p *models.Promotion) ValidationErrors {
	var errs ValidationErrors

	if p == nil {
		return ValidationErrors{{Field: "promotion", Message: "required"}}
	}

	switch p.Scope {
	case models.ScopeBill, models.ScopeTime, models.ScopeProduct:
		if !p.HasRule() {
			errs = append(errs, ValidationError{
				Field:   string(p.Scope) + "Rule",
				Message: fmt.Sprintf("required for scope %q", p.Scope),
			})
		}
		// A rule object is tied to its scope both ways: a bill promotion
		// carrying a timeRule is a malformed document, not a dormant rule.
		for _, field := range extraneousRules(p) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("not allowed for scope %q", p.Scope),
			})
		}
	default:
		errs = append(errs, ValidationError{Field: "scope", Message: fmt.Sprintf("unknown scope %q", p.Scope)})
	}

	switch p.Discount.Type {
	case models.DiscountPercentage, models.DiscountFixedAmount:
	default:
		errs = append(errs, ValidationError{Field: "discount.type", Message: fmt.Sprintf("unknown discount type %q", p.Discount.Type)})
	}
	if p.Discount.Value < 0 {
		errs = append(errs, ValidationError{Field: "discount.value", Message: "cannot be negative"})
	}
	if p.Discount.MaxAmount != nil && *p.Discount.MaxAmount < 0 {
		errs = append(errs, ValidationError{Field: "discount.maxAmount", Message: "cannot be negative"})
	}

	if p.BillRule != nil {
		errs = append(errs, validateBillRule(p.BillRule)...)
	}
	if p.TimeRule != nil {
		errs = append(errs, validateTimeRule(p.TimeRule)...)
	}
	if p.ProductRule != nil {
		errs = append(errs, validateProductRule(p.ProductRule)...)
	}

	return errs
}

// extraneousRules lists the rule objects present on a promotion that do not
// belong to its scope.
func extraneousRules(p *models.Promotion) []string {
	var extra []string
	if p.Scope != models.ScopeBill && p.BillRule != nil {
		extra = append(extra, "billRule")
	}
	if p.Scope != models.ScopeTime && p.TimeRule != nil {
		extra = append(extra, "timeRule")
	}
	if p.Scope != models.ScopeProduct && p.ProductRule != nil {
		extra = append(extra, "productRule")
	}
	return extra
}

func validateBillRule(r *models.BillRule) ValidationErrors {
	var errs ValidationErrors
	if r.MinSubtotal < 0 {
		errs = append(errs, ValidationError{Field: "billRule.minSubtotal", Message: "cannot be negative"})
	}
	if r.MinServiceAmount != nil && *r.MinServiceAmount < 0 {
		errs = append(errs, ValidationError{Field: "billRule.minServiceAmount", Message: "cannot be negative"})
	}
	if r.MinPlayMinutes != nil && *r.MinPlayMinutes < 0 {
		errs = append(errs, ValidationError{Field: "billRule.minPlayMinutes", Message: "cannot be negative"})
	}
	return errs
}

func validateTimeRule(r *models.TimeRule) ValidationErrors {
	var errs ValidationErrors

	if r.ValidFrom != nil && r.ValidTo != nil && r.ValidFrom.After(*r.ValidTo) {
		errs = append(errs, ValidationError{Field: "timeRule.validFrom", Message: "must not be after validTo"})
	}

	if len(r.DaysOfWeek) == 0 {
		errs = append(errs, ValidationError{Field: "timeRule.daysOfWeek", Message: "at least one day required"})
	}
	for _, day := range r.DaysOfWeek {
		if day < 0 || day > 6 {
			errs = append(errs, ValidationError{
				Field:   "timeRule.daysOfWeek",
				Message: fmt.Sprintf("day %d out of range 0..6", day),
			})
			break
		}
	}

	for i, tr := range r.TimeRanges {
		field := fmt.Sprintf("timeRule.timeRanges[%d]", i)
		if !timeOfDayPattern.MatchString(tr.From) || !timeOfDayPattern.MatchString(tr.To) {
			errs = append(errs, ValidationError{Field: field, Message: "bounds must be HH:mm"})
			continue
		}
		if tr.From >= tr.To {
			errs = append(errs, ValidationError{Field: field, Message: "from must be before to"})
		}
	}

	if r.MinMinutes < 0 {
		errs = append(errs, ValidationError{Field: "timeRule.minMinutes", Message: "cannot be negative"})
	}

	return errs
}

func validateProductRule(r *models.ProductRule) ValidationErrors {
	var errs ValidationErrors

	if len(r.Categories) == 0 && len(r.Products) == 0 && len(r.Combo) == 0 {
		errs = append(errs, ValidationError{
			Field:   "productRule",
			Message: "at least one of categories, products or combo required",
		})
	}
	for i, entry := range r.Combo {
		if entry.Product == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("productRule.combo[%d].product", i),
				Message: "required",
			})
		}
		if entry.Qty < 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("productRule.combo[%d].qty", i),
				Message: "must be at least 1",
			})
		}
	}

	return errs
}
