package handlers

import (
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type statusRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// StatusHandler handles HTTP requests for the order status registry.
type StatusHandler struct {
	service  *services.StatusService
	validate *validator.Validate
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(service *services.StatusService) *StatusHandler {
	return &StatusHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the status routes. All admin-only.
func (h *StatusHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	statuses := router.Group("/statuses", auth, admin)
	statuses.Post("/", h.HandleCreate)
	statuses.Get("/", h.HandleList)
	statuses.Get("/:id", h.HandleGet)
	statuses.Put("/:id", h.HandleUpdate)
	statuses.Delete("/:id", h.HandleDelete)
}

// HandleCreate registers a new status name.
func (h *StatusHandler) HandleCreate(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	status, err := h.service.Create(req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(status)
}

// HandleList returns all registered statuses.
func (h *StatusHandler) HandleList(c *fiber.Ctx) error {
	statuses, err := h.service.GetAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(statuses)
}

// HandleGet returns a single status.
func (h *StatusHandler) HandleGet(c *fiber.Ctx) error {
	status, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// HandleUpdate renames a status.
func (h *StatusHandler) HandleUpdate(c *fiber.Ctx) error {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	status, err := h.service.Update(c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(status)
}

// HandleDelete removes a status unless an order references it.
func (h *StatusHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Status deleted successfully",
	})
}
