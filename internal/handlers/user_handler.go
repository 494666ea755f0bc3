package handlers

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

type changeRoleRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	IsAdmin bool   `json:"is_admin"`
}

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	userService  *services.UserService
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, orderService *services.OrderService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the user routes. change_role precedes the :id
// routes so it is not captured as a path parameter.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	users := router.Group("/users")
	users.Post("/", h.HandleCreate)
	users.Get("/", auth, admin, h.HandleList)
	users.Put("/change_role", auth, admin, h.HandleChangeRole)
	users.Get("/:id/orders", auth, h.HandleListOrders)
	users.Get("/:id", auth, h.HandleGet)
	users.Put("/:id", auth, h.HandleUpdate)
	users.Delete("/:id", auth, h.HandleDelete)
}

// HandleCreate registers a new user account.
func (h *UserHandler) HandleCreate(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.userService.Register(user); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleGet returns a user. Self-or-admin.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	userID := c.Params("id")

	if !principal.IsAdmin && principal.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Access denied",
		})
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleList returns all users. Admin-only, enforced in RegisterRoutes.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	users, err := h.userService.GetAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleUpdate applies a partial update to a user. Self-or-admin.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	userID := c.Params("id")

	if !principal.IsAdmin && principal.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You are not authorized to update this user",
		})
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.userService.Update(userID, services.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleDelete removes a user. Self-or-admin; blocked while the user has
// active orders.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	userID := c.Params("id")

	if !principal.IsAdmin && principal.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You are not authorized to delete this user",
		})
	}

	if err := h.userService.Delete(userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

// HandleListOrders returns the orders owned by a user. Self-or-admin.
func (h *UserHandler) HandleListOrders(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	userID := c.Params("id")

	if !principal.IsAdmin && principal.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You are not authorized to view these orders",
		})
	}

	orders, err := h.orderService.ListForUser(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newOrderResponses(orders))
}

// HandleChangeRole grants or revokes admin privileges. Admin-only.
func (h *UserHandler) HandleChangeRole(c *fiber.Ctx) error {
	var req changeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	if err := h.userService.ChangeRole(req.UserID, req.IsAdmin); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "User role updated successfully",
	})
}
