package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL
// (usable con pool o tx). La jerarquía es un puntero al padre con FK
// autorreferente; los subárboles se resuelven con un CTE recursivo.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. ParentID vacío se guarda como NULL.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, parent_id, name, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.ParentID, category.Name, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `
		SELECT id, COALESCE(parent_id::text, ''), name, created_at, updated_at
		FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ParentID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// GetByName busca por nombre exacto (case-sensitive). Si hay varias devuelve
// la más antigua, para que get-or-create sea estable entre llamadas.
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	query := `
		SELECT id, COALESCE(parent_id::text, ''), name, created_at, updated_at
		FROM categories WHERE name = $1 ORDER BY created_at LIMIT 1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, name).Scan(
		&c.ID, &c.ParentID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

// GetDescendants resuelve el subárbol completo con raíz en id mediante un CTE
// recursivo (todos los hijos transitivos, no solo los inmediatos). Con
// includeSelf=false la raíz se excluye del resultado.
func (r *CategoryRepo) GetDescendants(id string, includeSelf bool) ([]string, error) {
	query := `
		WITH RECURSIVE subtree AS (
			SELECT id FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id FROM categories c
			INNER JOIN subtree s ON c.parent_id = s.id
		)
		SELECT id FROM subtree`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get descendants: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var descendantID string
		if err := rows.Scan(&descendantID); err != nil {
			return nil, fmt.Errorf("scan descendant: %w", err)
		}
		if !includeSelf && descendantID == id {
			continue
		}
		ids = append(ids, descendantID)
	}
	return ids, rows.Err()
}

// ListByParent lista hijas directas ordenadas por nombre; parentID vacío = raíces.
func (r *CategoryRepo) ListByParent(parentID string) ([]*entity.Category, error) {
	query := `
		SELECT id, COALESCE(parent_id::text, ''), name, created_at, updated_at
		FROM categories WHERE parent_id IS NOT DISTINCT FROM NULLIF($1, '')::uuid
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
