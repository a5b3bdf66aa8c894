package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Mensajes de error por fila. Son contrato de la API de ingesta.
const (
	errMissingNameOrPrice = "Missing name or price"
	errCategoryRequired   = "Category is required (category_id or category_name)"
	errInvalidPrice       = "Price must be a non-negative number with at most 2 decimal places"
	errSaveFailed         = "Failed to save product"
	errCategoryResolve    = "Failed to resolve category"
)

// BulkUseCase pipeline de ingesta masiva de productos. Cada fila se valida y
// persiste de forma independiente: el fallo de una jamás aborta a las demás,
// y deliberadamente no hay transacción de lote para que el éxito parcial sea
// observable y reportable.
type BulkUseCase struct {
	categories  *CategoryUseCase
	productRepo repository.ProductRepository
	cache       AverageCache // opcional; nil = sin cache
}

// NewBulkUseCase construye el pipeline.
func NewBulkUseCase(categories *CategoryUseCase, productRepo repository.ProductRepository, cache AverageCache) *BulkUseCase {
	return &BulkUseCase{categories: categories, productRepo: productRepo, cache: cache}
}

// Ingest procesa el lote fila por fila y devuelve el resultado agregado:
// cantidad creada, IDs en orden de entrada y errores etiquetados con su índice
// 1-based. Por fila: (1) name recortado no vacío y price presente, (2) la
// categoría resuelve por category_id (debe existir) o por category_name
// (get-or-create, padre sin asignar), (3) el precio parsea como decimal no
// negativo de dos decimales y el producto se persiste.
func (uc *BulkUseCase) Ingest(rows []dto.BulkProductRow) *dto.BulkIngestResult {
	result := &dto.BulkIngestResult{
		ProductIDs: []string{},
		Errors:     []dto.BulkRowError{},
	}
	addError := func(row int, msg string) {
		result.Errors = append(result.Errors, dto.BulkRowError{Row: row, Error: msg})
	}

	for i, row := range rows {
		index := i + 1

		name := strings.TrimSpace(row.Name.Value)
		if name == "" || !row.Price.Present {
			addError(index, errMissingNameOrPrice)
			continue
		}

		// category_id con alias category, como el contrato histórico del endpoint
		categoryRef := row.CategoryID
		if !present(categoryRef) {
			categoryRef = row.Category
		}

		var categoryID string
		switch {
		case present(categoryRef):
			category, err := uc.categories.GetByID(strings.TrimSpace(categoryRef.Value))
			if err != nil {
				addError(index, errCategoryResolve)
				continue
			}
			if category == nil {
				addError(index, fmt.Sprintf("Category id %s not found", strings.TrimSpace(categoryRef.Value)))
				continue
			}
			categoryID = category.ID
		case present(row.CategoryName):
			// La categoría se resuelve antes de validar el precio: un nombre
			// nuevo queda creado aunque la fila luego falle, y las filas
			// siguientes con el mismo nombre reutilizan la misma categoría.
			category, err := uc.categories.GetOrCreateByName(row.CategoryName.Value)
			if err != nil {
				addError(index, errCategoryResolve)
				continue
			}
			categoryID = category.ID
		default:
			addError(index, errCategoryRequired)
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(row.Price.Value))
		if err != nil || !validPrice(price) {
			addError(index, errInvalidPrice)
			continue
		}

		now := time.Now()
		product := &entity.Product{
			ID:         uuid.New().String(),
			CategoryID: categoryID,
			Name:       name,
			Price:      price,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.productRepo.Create(product); err != nil {
			addError(index, errSaveFailed)
			continue
		}
		result.ProductIDs = append(result.ProductIDs, product.ID)
		result.Created++
	}

	if result.Created > 0 && uc.cache != nil {
		uc.cache.InvalidateAverages()
	}
	return result
}

func present(f dto.RawField) bool {
	return f.Present && strings.TrimSpace(f.Value) != ""
}
