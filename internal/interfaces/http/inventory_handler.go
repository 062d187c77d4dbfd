package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/usecase"
	"github.com/jeansk1/eva4-backend/pkg/validator"
)

// InventoryHandler maneja la consulta de stock y el punto de reorden. La
// cantidad no se edita por esta vía: solo muta con compras, ventas y
// órdenes.
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar filas de stock (lectura pública; sin token exige branch_id)
// @Tags         inventory
// @Produce      json
// @Param        branch_id  query  string  false  "Filtrar por sucursal"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.StockListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetActor(c), c.Query("branch_id"), pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateReorderPoint godoc
// @Summary      Ajustar el punto de reorden de una fila de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateReorderPointRequest  true  "Sucursal, producto y umbral"
// @Success      200   {object}  dto.StockResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory/reorder-point [put]
func (h *InventoryHandler) UpdateReorderPoint(c *fiber.Ctx) error {
	var in dto.UpdateReorderPointRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := validator.Struct(in); errs != nil {
		return invalid(c, validator.Message(errs))
	}
	out, err := h.uc.UpdateReorderPoint(GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
