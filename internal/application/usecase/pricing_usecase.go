package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// PricingUseCase motor de agregación: promedio de precio sobre el subárbol de
// una categoría (la categoría y todos sus descendientes transitivos).
type PricingUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        AverageCache // opcional; nil = sin cache
}

// NewPricingUseCase construye el caso de uso.
func NewPricingUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, cache AverageCache) *PricingUseCase {
	return &PricingUseCase{categoryRepo: categoryRepo, productRepo: productRepo, cache: cache}
}

// AveragePrice devuelve la media aritmética del precio de todos los productos
// cuya categoría cae en el subárbol de categoryID (incluida ella misma).
// ErrNotFound si la categoría no existe; subárbol sin productos -> 0, nunca
// una división por cero.
func (uc *PricingUseCase) AveragePrice(categoryID string) (decimal.Decimal, error) {
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return decimal.Zero, err
	}
	if category == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	if uc.cache != nil {
		if avg, ok := uc.cache.GetAverage(categoryID); ok {
			return avg, nil
		}
	}
	ids, err := uc.categoryRepo.GetDescendants(categoryID, true)
	if err != nil {
		return decimal.Zero, err
	}
	avg, err := uc.productRepo.AverageByCategoryIDs(ids)
	if err != nil {
		return decimal.Zero, err
	}
	if uc.cache != nil {
		uc.cache.SetAverage(categoryID, avg)
	}
	return avg, nil
}
