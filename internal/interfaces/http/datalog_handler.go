package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/insumos-api/internal/application/dto"
	"github.com/jhoicas/insumos-api/internal/application/usecase"
)

// DataLogHandler consulta de bitácora (protegido, solo lectura).
type DataLogHandler struct {
	uc *usecase.DataLogUseCase
}

func NewDataLogHandler(uc *usecase.DataLogUseCase) *DataLogHandler {
	return &DataLogHandler{uc: uc}
}

// List godoc
// @Summary      Consultar bitácora de cambios
// @Tags         datalog
// @Security     Bearer
// @Produce      json
// @Param        table_name  query  string  false  "Filtrar por tabla"
// @Param        action      query  string  false  "CREATE | UPDATE | DELETE"
// @Param        user_id     query  string  false  "Filtrar por usuario"
// @Param        date_from   query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        date_to     query  string  false  "YYYY-MM-DD (inclusivo)"
// @Success      200  {object}  dto.DataLogListResponse
// @Router       /api/datalog [get]
func (h *DataLogHandler) List(c *fiber.Ctx) error {
	var f dto.DataLogFacets
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
