package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeansk1/eva4-backend/internal/application/dto"
	"github.com/jeansk1/eva4-backend/internal/application/reports"
	"github.com/jeansk1/eva4-backend/pkg/validator"
)

// ReportHandler maneja reportes y el panel de indicadores. Los reportes
// requieren plan estándar o superior vigente; el panel no tiene gate de
// plan.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte de inventario o de ventas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  true   "stock | sales"
// @Param        company_id  query  string  false  "Compañía (solo super_admin)"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD, solo sales)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD, solo sales)"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      403  {object}  dto.ErrorResponse  "plan insuficiente o rol sin permiso"
// @Router       /api/reports [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	actor := GetActor(c)
	companyID := c.Query("company_id")

	switch c.Query("type") {
	case "stock":
		out, err := h.uc.StockReport(actor, companyID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	case "sales":
		var in dto.SalesReportRequest
		if err := c.QueryParser(&in); err != nil {
			return invalid(c, "query inválida")
		}
		if errs := validator.Struct(in); errs != nil {
			return invalid(c, validator.Message(errs))
		}
		out, err := h.uc.SalesReport(actor, companyID, in)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	default:
		return invalid(c, "type debe ser stock o sales")
	}
}

// Dashboard godoc
// @Summary      Indicadores del panel principal
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Compañía (solo super_admin)"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(GetActor(c), c.Query("company_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
