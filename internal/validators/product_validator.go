package validators

type CreateProductRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Category string  `json:"category" validate:"required,min=1,max=100"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Unit     string  `json:"unit" validate:"omitempty,max=50"`
}

type UpdateProductRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string  `json:"category" validate:"omitempty,min=1,max=100"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	Unit     *string  `json:"unit" validate:"omitempty,max=50"`
	Active   *bool    `json:"active"`
}
