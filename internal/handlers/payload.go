package handlers

// NewProductPayload is the request body of POST /products.
type NewProductPayload struct {
	Title   string  `json:"title" validate:"required,notblank,max=50"`
	Details *string `json:"details" validate:"omitempty,max=1000"`
}

// UpdateProductPayload is the request body of PATCH /products/:id.
type UpdateProductPayload struct {
	Title   string  `json:"title" validate:"required,notblank,max=50"`
	Details *string `json:"details" validate:"omitempty,max=1000"`
}
