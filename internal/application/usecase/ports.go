package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el commit todo-o-nada del pedido
// (fila + asociaciones + total, o nada).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// OrderNotifier recibe el aviso de pedido creado después del commit.
// La implementación es mejor esfuerzo; el caso de uso ignora su resultado.
type OrderNotifier interface {
	OrderCreated(order *entity.Order, customer *entity.User, products []*entity.Product)
}

// AverageCache cache opcional del promedio de precio por subárbol.
// Un fallo del cache degrada a la consulta directa, nunca a un error.
type AverageCache interface {
	GetAverage(categoryID string) (decimal.Decimal, bool)
	SetAverage(categoryID string, avg decimal.Decimal)
	// InvalidateAverages purga todos los promedios cacheados (tras escrituras
	// de catálogo, que mueven el promedio de todos los ancestros).
	InvalidateAverages()
}
