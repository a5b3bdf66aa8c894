package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Category es el ID de la categoría (obligatorio, debe existir).
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=255"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AveragePriceResponse salida del agregado de precio por subárbol.
// El promedio se emite como número (comportamiento observado del agregado crudo).
type AveragePriceResponse struct {
	AveragePrice float64 `json:"average_price"`
}
