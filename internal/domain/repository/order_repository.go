package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus asociaciones.
type OrderRepository interface {
	Create(order *entity.Order) error
	// AddProduct asocia un producto al pedido (tabla order_products).
	AddProduct(orderID, productID string) error
	GetByID(id string) (*entity.Order, error)
	// GetProducts devuelve los productos asociados al pedido.
	GetProducts(orderID string) ([]*entity.Product, error)
}
