package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// OrderUseCase arma pedidos: valida productos, calcula el total exacto y
// persiste pedido + asociaciones en una sola transacción. Tras el commit
// dispara las notificaciones, cuyo resultado nunca altera el pedido.
type OrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	notifier    OrderNotifier // opcional; nil = sin notificaciones
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	notifier OrderNotifier,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// CreateOrder crea un pedido para el cliente autenticado. Cada productId debe
// resolver a un producto existente; el primero inválido falla todo el pedido
// sin efectos secundarios. Lista vacía es válida (total 0.00). La asociación
// pedido-producto es un conjunto: IDs repetidos cuentan una sola vez.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, customerID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	customer, err := uc.userRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrUnauthorized
	}

	seen := make(map[string]bool, len(in.Products))
	productIDs := make([]string, 0, len(in.Products))
	for _, id := range in.Products {
		if !seen[id] {
			seen[id] = true
			productIDs = append(productIDs, id)
		}
	}

	// Validación y total fuera de la tx (solo lectura)
	products := make([]*entity.Product, 0, len(productIDs))
	total := decimal.Zero
	for _, id := range productIDs {
		product, err := uc.productRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		products = append(products, product)
		total = total.Add(product.Price)
	}

	order := &entity.Order{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Total:      total,
		CreatedAt:  time.Now(),
	}

	// Fila del pedido + asociaciones + total en un solo commit: si algo falla
	// a mitad de camino no queda nada persistido.
	err = uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository, _ repository.ProductRepository) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, id := range productIDs {
			if err := orderRepo.AddProduct(order.ID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notificaciones después del commit, exactamente una vez. El despachador
	// se traga cualquier fallo; el pedido ya confirmado no se revierte.
	if uc.notifier != nil {
		uc.notifier.OrderCreated(order, customer, products)
	}

	return toOrderResponse(order, productIDs), nil
}

// GetByID obtiene un pedido del cliente autenticado con sus productos.
func (uc *OrderUseCase) GetByID(customerID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CustomerID != customerID {
		return nil, domain.ErrForbidden
	}
	products, err := uc.orderRepo.GetProducts(id)
	if err != nil {
		return nil, err
	}
	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}
	return toOrderResponse(order, productIDs), nil
}

func toOrderResponse(o *entity.Order, productIDs []string) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:        o.ID,
		Customer:  o.CustomerID,
		Products:  productIDs,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}
}
