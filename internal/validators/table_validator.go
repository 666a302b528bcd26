package validators

type CreateTableRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	AreaID      *string `json:"areaId" validate:"omitempty,object_id"`
	RatePerHour float64 `json:"ratePerHour" validate:"required,gt=0"`
	Note        string  `json:"note" validate:"omitempty,max=500"`
}

type UpdateTableRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	AreaID      *string  `json:"areaId" validate:"omitempty,object_id"`
	RatePerHour *float64 `json:"ratePerHour" validate:"omitempty,gt=0"`
	Active      *bool    `json:"active"`
	Note        *string  `json:"note" validate:"omitempty,max=500"`
}

type UpdateTableStatusRequest struct {
	Status string `json:"status" validate:"required,table_status"`
}

type UpdateTableActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type UpdateTableRateRequest struct {
	RatePerHour float64 `json:"ratePerHour" validate:"required,gt=0"`
}

type TableOrderRequest struct {
	ID    string `json:"id" validate:"required,object_id"`
	Order int    `json:"order" validate:"min=0"`
}

type ReorderTablesRequest struct {
	Items []TableOrderRequest `json:"items" validate:"required,min=1,max=200,dive"`
}

type CreateAreaRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Order       int    `json:"order" validate:"min=0"`
}

type UpdateAreaRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Order       *int    `json:"order" validate:"omitempty,min=0"`
}
