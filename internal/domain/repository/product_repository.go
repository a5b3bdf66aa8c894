package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// AverageByCategoryIDs devuelve el promedio de precio de los productos cuya
	// categoría está en categoryIDs. Conjunto vacío o sin productos -> 0.
	AverageByCategoryIDs(categoryIDs []string) (decimal.Decimal, error)
	// ListByCategory lista productos con paginación; categoryID vacío = todos.
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error)
}
