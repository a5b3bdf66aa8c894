package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// PricingHandler expone el agregado de precio por subárbol de categorías.
type PricingHandler struct {
	uc *usecase.PricingUseCase
}

func NewPricingHandler(uc *usecase.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// AveragePrice devuelve el precio promedio de los productos de la categoría y
// todas sus descendientes. Subárbol sin productos = 0.
// GET /api/average-price/:id/
func (h *PricingHandler) AveragePrice(c *fiber.Ctx) error {
	avg, err := h.uc.AveragePrice(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(dto.AveragePriceResponse{AveragePrice: avg.InexactFloat64()})
}
