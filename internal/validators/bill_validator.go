package validators

type PayBillRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,payment_method"`
}
