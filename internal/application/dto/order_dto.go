package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear un pedido. El cliente se toma del
// token del llamador, nunca del cuerpo. Lista vacía es válida (total 0.00).
type CreateOrderRequest struct {
	Products []string `json:"products"`
}

// OrderResponse salida de un pedido con los IDs de sus productos.
type OrderResponse struct {
	ID        string          `json:"id"`
	Customer  string          `json:"customer"`
	Products  []string        `json:"products"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
