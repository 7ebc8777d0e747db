package handlers

import (
	"strconv"

	"github.com/dommaster/backend/internal/dto"
	"github.com/dommaster/backend/internal/models"
	"github.com/dommaster/backend/internal/services"
	"github.com/dommaster/backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog  *services.CatalogService
	sessions *session.Manager
}

func NewCatalogHandler(catalog *services.CatalogService, sessions *session.Manager) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, sessions: sessions}
}

// viewerRole resolves the caller's role on public routes. Anonymous
// callers see the catalog as a plain user.
func (h *CatalogHandler) viewerRole(c *fiber.Ctx) models.Role {
	if ident, ok := h.sessions.Peek(c); ok {
		return ident.Role
	}
	return models.RoleUser
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	items, err := h.catalog.List(h.viewerRole(c), c.Query("sort"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewServiceListResponse(items))
}

func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "service not found",
		})
	}

	item, err := h.catalog.Get(h.viewerRole(c), uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewServiceResponse(item))
}

func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	item := req.ToModel()
	if err := h.catalog.Create(&item); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewServiceResponse(&item))
}

func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "service not found",
		})
	}

	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}

	item := req.ToModel()
	updated, err := h.catalog.Update(uint(id), &item)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewServiceResponse(updated))
}

func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "service not found",
		})
	}

	if err := h.catalog.Delete(uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Service deleted"})
}
