package products

// CreateProductInput carries the caller-supplied fields for a new product.
type CreateProductInput struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// UpdateProductInput is a partial merge: only non-empty name and non-nil
// description override the stored values.
type UpdateProductInput struct {
	Code        string  `json:"code" validate:"required"`
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
