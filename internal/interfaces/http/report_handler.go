package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/application/tracking"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/pdf"
)

// ReportHandler relatórios agregados, estoque baixo e feed de atividades
// (protegido, somente leitura).
type ReportHandler struct {
	uc     *tracking.ReportUseCase
	pdfGen *pdf.MarotoGenerator
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *tracking.ReportUseCase, pdfGen *pdf.MarotoGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdfGen: pdfGen}
}

// StatusCounts godoc
// @Summary      Contagem de lançamentos por status
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Início do período (RFC3339)"
// @Param        to    query  string  false  "Fim do período (RFC3339)"
// @Success      200  {object}  dto.StatusCountsDTO
// @Router       /api/reports/status-counts [get]
func (h *ReportHandler) StatusCounts(c *fiber.Ctx) error {
	filter, err := reportFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datas devem estar em RFC3339"})
	}
	out, err := h.uc.StatusCounts(c.Context(), filter.From, filter.To)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Relatório agregado de movimentações
// @Description  Totais por setor, localização e status, e o responsável que
//
//	mais solicitou saídas por setor, no período filtrado.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Início do período (RFC3339)"
// @Param        to           query  string  false  "Fim do período (RFC3339)"
// @Param        sector_id    query  string  false  "Filtrar por setor"
// @Param        location_id  query  string  false  "Filtrar por localização"
// @Success      200  {object}  dto.MovementReportDTO
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	filter, err := reportFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datas devem estar em RFC3339"})
	}
	out, err := h.uc.MovementReport(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MovementsPDF godoc
// @Summary      Relatório de movimentações em PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from         query  string  false  "Início do período (RFC3339)"
// @Param        to           query  string  false  "Fim do período (RFC3339)"
// @Param        sector_id    query  string  false  "Filtrar por setor"
// @Param        location_id  query  string  false  "Filtrar por localização"
// @Success      200  {file}  binary
// @Router       /api/reports/movements.pdf [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	filter, err := reportFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datas devem estar em RFC3339"})
	}
	report, err := h.uc.MovementReport(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	doc, err := h.pdfGen.GenerateMovementReport(c.Context(), report, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio-movimentacoes.pdf"`)
	return c.Send(doc)
}

// LowStock godoc
// @Summary      Equipamentos com estoque baixo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Activity godoc
// @Summary      Feed de atividades recentes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Limite"  default(20)
// @Success      200  {array}  dto.ActivityEntryDTO
// @Router       /api/reports/activity [get]
func (h *ReportHandler) Activity(c *fiber.Ctx) error {
	out, err := h.uc.RecentActivity(c.Context(), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
