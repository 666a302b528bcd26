package validators

type OpenSessionRequest struct {
	TableID string `json:"tableId" validate:"required,object_id"`
	Note    string `json:"note" validate:"omitempty,max=500"`
}

type AddSessionItemRequest struct {
	ProductID string `json:"productId" validate:"required,object_id"`
	Qty       int    `json:"qty" validate:"required,min=1,max=999"`
	Note      string `json:"note" validate:"omitempty,max=500"`
}

type UpdateSessionItemRequest struct {
	Qty  *int    `json:"qty" validate:"omitempty,min=0,max=999"`
	Note *string `json:"note" validate:"omitempty,max=500"`
}

// CheckoutRequest closes a session into a bill. Codes restrict which
// promotions are considered; empty means every active one. An empty
// paymentMethod leaves the bill unpaid for later settlement through the
// bills API.
type CheckoutRequest struct {
	PaymentMethod string   `json:"paymentMethod" validate:"omitempty,payment_method"`
	Codes         []string `json:"codes" validate:"omitempty,max=20,dive,promo_code"`
	Surcharge     float64  `json:"surcharge" validate:"min=0"`
	Note          string   `json:"note" validate:"omitempty,max=500"`
}

type PreviewCloseRequest struct {
	Codes []string `json:"codes" validate:"omitempty,max=20,dive,promo_code"`
}

type VoidSessionRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

func ValidateCheckout(req *CheckoutRequest) ValidationErrors {
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
