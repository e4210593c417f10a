package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
)

// UsageHandler maneja las peticiones HTTP para registros de consumo (protegido).
type UsageHandler struct {
	uc *usecase.UsageUseCase
}

func NewUsageHandler(uc *usecase.UsageUseCase) *UsageHandler {
	return &UsageHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar consumo (descuenta stock atómicamente)
// @Tags         usage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordUsageRequest  true  "Datos del consumo"
// @Success      201   {object}  dto.UsageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/usage [post]
func (h *UsageHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordUsage(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar consumos
// @Tags         usage
// @Security     Bearer
// @Produce      json
// @Param        batch_id     query  string  false  "Filtrar por lote"
// @Param        material_id  query  string  false  "Filtrar por material"
// @Param        date_from    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        date_to      query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.UsageListResponse
// @Router       /api/usage [get]
func (h *UsageHandler) List(c *fiber.Ctx) error {
	var f dto.UsageFacets
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), f, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar consumo (restaura stock al lote)
// @Tags         usage
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "restauración excede cantidad inicial"
// @Router       /api/usage/{id} [delete]
func (h *UsageHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
