package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// GetByName busca por igualdad exacta de nombre (case-sensitive).
	// Si hay varias con el mismo nombre devuelve la más antigua.
	GetByName(name string) (*entity.Category, error)
	// GetDescendants devuelve los IDs del subárbol completo con raíz en id
	// (todos los hijos transitivos, no solo los inmediatos).
	GetDescendants(id string, includeSelf bool) ([]string, error)
	// ListByParent lista hijas directas ordenadas por nombre; parentID vacío = raíces.
	ListByParent(parentID string) ([]*entity.Category, error)
}
