package http

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// Mensaje de error de nivel superior cuando el lote no trae ni archivo ni lista.
const bulkPayloadError = `Provide a CSV file under "file" or a JSON list under "products"`

// ProductHandler maneja el catálogo de productos y la ingesta masiva.
type ProductHandler struct {
	uc   *usecase.ProductUseCase
	bulk *usecase.BulkUseCase
}

func NewProductHandler(uc *usecase.ProductUseCase, bulk *usecase.BulkUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, bulk: bulk}
}

// Create crea un producto en una categoría existente.
// POST /api/products/
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de solicitud inválido"})
	}

	prod, err := h.uc.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// Referencia a una categoría inexistente: error de validación del cuerpo.
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la categoría no existe"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(prod)
}

// GetByID devuelve un producto por ID.
// GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	prod, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	if prod == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()})
	}
	return c.JSON(prod)
}

// List lista productos, con filtro opcional ?category=<id> y paginación.
// GET /api/products/
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	list, err := h.uc.List(c.Query("category"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(list)
}

// BulkUpload ingesta un lote de productos desde un CSV (campo multipart "file")
// o una lista JSON (campo "products"). Las filas se procesan de forma
// independiente: el resultado reporta creadas y errores por fila. 201 si al
// menos una fila se creó, 400 si ninguna.
// POST /api/products/bulk/
func (h *ProductHandler) BulkUpload(c *fiber.Ctx) error {
	rows, errMsg := h.parseBulkRows(c)
	if errMsg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": errMsg})
	}

	result := h.bulk.Ingest(rows)
	status := fiber.StatusCreated
	if result.Created == 0 {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(result)
}

// parseBulkRows extrae las filas crudas del request. Devuelve un mensaje de
// error de nivel superior cuando el payload completo es inutilizable (archivo
// ilegible, products no es lista); los errores por fila no se detectan acá.
func (h *ProductHandler) parseBulkRows(c *fiber.Ctx) ([]dto.BulkProductRow, string) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Sprintf("Invalid file: %v", err)
		}
		defer f.Close()
		rows, err := parseCSVRows(f)
		if err != nil {
			return nil, fmt.Sprintf("Invalid file: %v", err)
		}
		return rows, ""
	}

	var body struct {
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, bulkPayloadError
	}
	raw := bytes.TrimSpace(body.Products)
	if len(raw) == 0 || string(raw) == "null" {
		// Sin lista: el lote vacío se reporta como cero creadas, no como 500.
		return nil, ""
	}
	if raw[0] != '[' {
		return nil, bulkPayloadError
	}
	var rows []dto.BulkProductRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, bulkPayloadError
	}
	return rows, ""
}

// parseCSVRows lee un CSV con encabezado. Celdas vacías cuentan como campo
// ausente, igual que una clave faltante en JSON.
func parseCSVRows(r io.Reader) ([]dto.BulkProductRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]dto.BulkProductRow, 0, len(records)-1)
	for _, record := range records[1:] {
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				fields[strings.TrimSpace(name)] = record[i]
			}
		}
		row := dto.BulkProductRow{}
		if v := strings.TrimSpace(fields["name"]); v != "" {
			row.Name = dto.Raw(v)
		}
		if v := strings.TrimSpace(fields["price"]); v != "" {
			row.Price = dto.Raw(v)
		}
		if v := strings.TrimSpace(fields["category_id"]); v != "" {
			row.CategoryID = dto.Raw(v)
		}
		if v := strings.TrimSpace(fields["category"]); v != "" {
			row.Category = dto.Raw(v)
		}
		if v := strings.TrimSpace(fields["category_name"]); v != "" {
			row.CategoryName = dto.Raw(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
