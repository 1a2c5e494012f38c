package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gfsilva/setup-rastreio/internal/application/dto"
	"github.com/gfsilva/setup-rastreio/internal/application/usecase"
	"github.com/gfsilva/setup-rastreio/internal/domain"
)

// CatalogHandler catálogos de apoio: categorias, localizações e setores
// (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler constrói o handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// catalogNameBody corpo comum de criação dos três catálogos.
type catalogNameBody struct {
	Name string `json:"name"`
}

// CreateCategory godoc
// @Summary      Criar categoria
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "name"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	name, ok := parseCatalogName(c)
	if !ok {
		return nil
	}
	out, err := h.uc.CreateCategory(c.Context(), name)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorias
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  object
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Excluir categoria
// @Tags         catalogs
// @Security     Bearer
// @Param        id  path  string  true  "ID da categoria"
// @Success      204
// @Router       /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return catalogError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateLocation godoc
// @Summary      Criar localização
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "name"
// @Success      201   {object}  map[string]string
// @Router       /api/locations [post]
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	name, ok := parseCatalogName(c)
	if !ok {
		return nil
	}
	out, err := h.uc.CreateLocation(c.Context(), name)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLocations godoc
// @Summary      Listar localizações
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  object
// @Router       /api/locations [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.uc.ListLocations(c.Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// DeleteLocation godoc
// @Summary      Excluir localização
// @Tags         catalogs
// @Security     Bearer
// @Param        id  path  string  true  "ID da localização"
// @Success      204
// @Router       /api/locations/{id} [delete]
func (h *CatalogHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.uc.DeleteLocation(c.Context(), c.Params("id")); err != nil {
		return catalogError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSector godoc
// @Summary      Criar setor
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "name"
// @Success      201   {object}  map[string]string
// @Router       /api/sectors [post]
func (h *CatalogHandler) CreateSector(c *fiber.Ctx) error {
	name, ok := parseCatalogName(c)
	if !ok {
		return nil
	}
	out, err := h.uc.CreateSector(c.Context(), name)
	if err != nil {
		return catalogError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSectors godoc
// @Summary      Listar setores
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  object
// @Router       /api/sectors [get]
func (h *CatalogHandler) ListSectors(c *fiber.Ctx) error {
	out, err := h.uc.ListSectors(c.Context())
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(out)
}

// DeleteSector godoc
// @Summary      Excluir setor
// @Tags         catalogs
// @Security     Bearer
// @Param        id  path  string  true  "ID do setor"
// @Success      204
// @Router       /api/sectors/{id} [delete]
func (h *CatalogHandler) DeleteSector(c *fiber.Ctx) error {
	if err := h.uc.DeleteSector(c.Context(), c.Params("id")); err != nil {
		return catalogError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseCatalogName lê o name do corpo; em caso de erro a resposta já foi
// escrita e ok é false.
func parseCatalogName(c *fiber.Ctx) (name string, ok bool) {
	var in catalogNameBody
	if err := c.BodyParser(&in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		return "", false
	}
	if in.Name == "" {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name é requerido"})
		return "", false
	}
	return in.Name, true
}

func catalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro não encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "nome já cadastrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
