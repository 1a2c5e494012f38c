package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/application/tracking"
	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/domain/entity"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/export"
)

// TrackingHandler registro, edição, exclusão e baixa de movimentações, mais
// o histórico e seu CSV (protegido).
type TrackingHandler struct {
	uc       *tracking.UseCase
	history  *tracking.HistoryUseCase
	exporter *export.CSVExporter
}

// NewTrackingHandler constrói o handler.
func NewTrackingHandler(uc *tracking.UseCase, history *tracking.HistoryUseCase, exporter *export.CSVExporter) *TrackingHandler {
	return &TrackingHandler{uc: uc, history: history, exporter: exporter}
}

// Register godoc
// @Summary      Registrar movimentação
// @Description  Lança um movimento no livro e reconcilia a quantidade
//
//	disponível do equipamento na mesma transação.
//
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "equipment_id, status, quantity e descritivos"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tracking [post]
func (h *TrackingHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	m, err := h.uc.RegisterMovement(c.Context(), GetEmail(c), in)
	if err != nil {
		return trackingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToResponse(m))
}

// List godoc
// @Summary      Histórico de movimentações
// @Tags         tracking
// @Security     Bearer
// @Produce      json
// @Param        equipment_id  query  string  false  "Filtrar por equipamento"
// @Param        status        query  string  false  "Filtrar por status"
// @Param        sector_id     query  string  false  "Filtrar por setor"
// @Param        location_id   query  string  false  "Filtrar por localização"
// @Param        from          query  string  false  "Início do período (RFC3339)"
// @Param        to            query  string  false  "Fim do período (RFC3339)"
// @Param        limit         query  int     false  "Limite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/tracking [get]
func (h *TrackingHandler) List(c *fiber.Ctx) error {
	filter, err := historyFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datas devem estar em RFC3339"})
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.history.List(c.Context(), filter, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar movimentação
// @Description  Reverte o efeito do lançamento original sobre o estoque e
//
//	aplica o efeito dos novos valores, atomicamente.
//
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do lançamento"
// @Param        body  body  dto.EditMovementRequest  true  "Novos valores"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tracking/{id} [put]
func (h *TrackingHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	m, err := h.uc.EditMovement(c.Context(), c.Params("id"), in)
	if err != nil {
		return trackingError(c, err)
	}
	return c.JSON(movementToResponse(m))
}

// Delete godoc
// @Summary      Excluir movimentação
// @Description  Remove o lançamento e devolve ao estoque o efeito que ele
//
//	tinha aplicado (exclusão compensada).
//
// @Tags         tracking
// @Security     Bearer
// @Param        id  path  string  true  "ID do lançamento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tracking/{id} [delete]
func (h *TrackingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteMovement(c.Context(), c.Params("id")); err != nil {
		return trackingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Baixa godoc
// @Summary      Dar baixa em uma movimentação aberta
// @Description  Fecha um lançamento de saída ou manutenção: condição "bom"
//
//	devolve a quantidade ao estoque; "danificado" registra a
//	perda definitiva.
//
// @Tags         tracking
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do lançamento aberto"
// @Param        body  body  dto.BaixaRequest  true  "condition (bom|danificado), responsible"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tracking/{id}/baixa [post]
func (h *TrackingHandler) Baixa(c *fiber.Ctx) error {
	var in dto.BaixaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	m, err := h.uc.DarBaixa(c.Context(), GetEmail(c), c.Params("id"), in)
	if err != nil {
		return trackingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToResponse(m))
}

// ExportCSV godoc
// @Summary      Exportar histórico em CSV
// @Tags         tracking
// @Security     Bearer
// @Produce      text/csv
// @Param        equipment_id  query  string  false  "Filtrar por equipamento"
// @Param        status        query  string  false  "Filtrar por status"
// @Param        from          query  string  false  "Início do período (RFC3339)"
// @Param        to            query  string  false  "Fim do período (RFC3339)"
// @Success      200  {file}  binary
// @Router       /api/tracking/export.csv [get]
func (h *TrackingHandler) ExportCSV(c *fiber.Ctx) error {
	filter, err := historyFilterFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datas devem estar em RFC3339"})
	}
	rows, err := h.history.List(c.Context(), filter, dto.PageRequest{Limit: 10000})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	data, err := h.exporter.TrackingCSV(rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CSV", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimentacoes.csv"`)
	return c.Send(data)
}

// historyFilterFromQuery monta o filtro do histórico a partir da query string.
func historyFilterFromQuery(c *fiber.Ctx) (tracking.HistoryFilter, error) {
	filter := tracking.HistoryFilter{
		EquipmentID: c.Query("equipment_id"),
		Status:      c.Query("status"),
		SectorID:    c.Query("sector_id"),
		LocationID:  c.Query("location_id"),
	}
	report, err := reportFilterFromQuery(c)
	if err != nil {
		return filter, err
	}
	filter.Report = report
	return filter, nil
}

// reportFilterFromQuery interpreta from/to em RFC3339.
func reportFilterFromQuery(c *fiber.Ctx) (dto.ReportFilter, error) {
	filter := dto.ReportFilter{
		SectorID:   c.Query("sector_id"),
		LocationID: c.Query("location_id"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	return filter, nil
}

// movementToResponse converte a entidade para o corpo de resposta.
func movementToResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		EquipmentID:       m.EquipmentID,
		Status:            m.Status,
		Quantity:          m.Quantity,
		LocationID:        m.LocationID,
		SectorID:          m.SectorID,
		ResponsiblePerson: m.ResponsiblePerson,
		DeliveredBy:       m.DeliveredBy,
		ReceivedBy:        m.ReceivedBy,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
	}
}

// trackingError traduz erros de domínio do motor de reconciliação para HTTP.
func trackingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipamento ou lançamento não encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "estoque insuficiente para a operação"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflito de concorrência; tente novamente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
