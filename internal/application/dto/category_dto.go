package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
// Parent vacío crea una raíz; si viene, debe referenciar una categoría existente.
type CreateCategoryRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=255"`
	Parent string `json:"parent"`
}

// CategoryResponse salida de una categoría. Parent nulo en raíces.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Parent    *string   `json:"parent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse lista de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
