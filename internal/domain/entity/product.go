package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Pertenece a exactamente una
// categoría; Price es decimal no negativo con dos decimales.
type Product struct {
	ID         string
	CategoryID string
	Name       string
	Price      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
