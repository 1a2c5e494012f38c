package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/application/usecase"
	"github.com/gfsilva/setup-rastreio/internal/domain"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/export"
	"github.com/gfsilva/setup-rastreio/internal/infrastructure/pdf"
)

// EquipmentHandler cadastro de equipamentos, lookup por etiqueta e
// geração de etiquetas QR (protegido).
type EquipmentHandler struct {
	uc       *usecase.EquipmentUseCase
	pdfGen   *pdf.MarotoGenerator
	exporter *export.CSVExporter
}

// NewEquipmentHandler constrói o handler.
func NewEquipmentHandler(uc *usecase.EquipmentUseCase, pdfGen *pdf.MarotoGenerator, exporter *export.CSVExporter) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, pdfGen: pdfGen, exporter: exporter}
}

// Create godoc
// @Summary      Cadastrar equipamento
// @Tags         equipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveEquipmentRequest  true  "Dados do equipamento"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipments [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	eq, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return equipmentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usecase.ToEquipmentResponse(eq))
}

// List godoc
// @Summary      Listar equipamentos
// @Tags         equipments
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Busca por nome (insensível a acentos)"
// @Param        category_id  query  string  false  "Filtrar por categoria"
// @Param        limit        query  int     false  "Limite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.EquipmentResponse
// @Router       /api/equipments [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	items, err := h.uc.List(c.Context(), c.Query("search"), c.Query("category_id"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.EquipmentResponse, 0, len(items))
	for _, eq := range items {
		out = append(out, usecase.ToEquipmentResponse(eq))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter equipamento por ID
// @Tags         equipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do equipamento"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	eq, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return equipmentError(c, err)
	}
	return c.JSON(usecase.ToEquipmentResponse(eq))
}

// Update godoc
// @Summary      Atualizar equipamento
// @Tags         equipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do equipamento"
// @Param        body  body  dto.SaveEquipmentRequest  true  "Dados a atualizar (quantidade é ignorada)"
// @Success      200   {object}  dto.EquipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveEquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	eq, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return equipmentError(c, err)
	}
	return c.JSON(usecase.ToEquipmentResponse(eq))
}

// Delete godoc
// @Summary      Excluir equipamento
// @Tags         equipments
// @Security     Bearer
// @Param        id  path  string  true  "ID do equipamento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [delete]
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return equipmentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Lookup godoc
// @Summary      Resolver etiqueta lida para equipamento
// @Description  Aceita o conteúdo cru da leitura (serial puro, "serial: X"
//
//	ou o JSON da etiqueta QR) e devolve o equipamento com os
//	campos do último lançamento para pré-preenchimento.
//
// @Tags         equipments
// @Security     Bearer
// @Accept       plain
// @Produce      json
// @Success      200  {object}  dto.LookupResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/lookup [post]
func (h *EquipmentHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.LookupBySerial(c.Context(), string(c.Body()))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "leitura sem número de série"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nenhum equipamento com esse número de série"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LabelSheet godoc
// @Summary      Folha de etiquetas QR
// @Description  Gera o PDF com as etiquetas QR dos equipamentos para
//
//	impressão. Sem filtro, inclui todo o cadastro.
//
// @Tags         equipments
// @Security     Bearer
// @Produce      application/pdf
// @Param        category_id  query  string  false  "Filtrar por categoria"
// @Success      200  {file}  binary
// @Router       /api/equipments/labels.pdf [get]
func (h *EquipmentHandler) LabelSheet(c *fiber.Ctx) error {
	items, err := h.uc.ListAll(c.Context(), "", c.Query("category_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	payloads := make([]dto.LookupPayload, 0, len(items))
	for _, eq := range items {
		payloads = append(payloads, usecase.BuildLookupPayload(eq))
	}
	doc, err := h.pdfGen.GenerateLabelSheet(c.Context(), payloads)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="etiquetas.pdf"`)
	return c.Send(doc)
}

// Label godoc
// @Summary      Etiqueta QR de um equipamento
// @Tags         equipments
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID do equipamento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/label.pdf [get]
func (h *EquipmentHandler) Label(c *fiber.Ctx) error {
	eq, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return equipmentError(c, err)
	}
	doc, err := h.pdfGen.GenerateLabelSheet(c.Context(), []dto.LookupPayload{usecase.BuildLookupPayload(eq)})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="etiqueta.pdf"`)
	return c.Send(doc)
}

// ExportCSV godoc
// @Summary      Exportar inventário em CSV
// @Tags         equipments
// @Security     Bearer
// @Produce      text/csv
// @Param        search       query  string  false  "Busca por nome"
// @Param        category_id  query  string  false  "Filtrar por categoria"
// @Success      200  {file}  binary
// @Router       /api/equipments/export.csv [get]
func (h *EquipmentHandler) ExportCSV(c *fiber.Ctx) error {
	items, err := h.uc.ListAll(c.Context(), c.Query("search"), c.Query("category_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	rows := make([]dto.EquipmentResponse, 0, len(items))
	for _, eq := range items {
		rows = append(rows, usecase.ToEquipmentResponse(eq))
	}
	data, err := h.exporter.InventoryCSV(rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CSV", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.csv"`)
	return c.Send(data)
}

// equipmentError traduz erros de domínio do cadastro para HTTP.
func equipmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "equipamento não encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "número de série já cadastrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
