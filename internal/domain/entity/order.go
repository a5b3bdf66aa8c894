package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa un pedido de un cliente. Total es la suma exacta de los
// precios de sus productos al momento de la creación y no se recalcula.
// Las asociaciones pedido-producto viven en la tabla order_products.
type Order struct {
	ID         string
	CustomerID string
	Total      decimal.Decimal
	CreatedAt  time.Time
}
