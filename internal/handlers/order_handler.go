package handlers

import (
	"time"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type orderLineRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	Products []orderLineRequest `json:"products" validate:"required,min=1,dive"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,min=1,max=50"`
}

type orderLineResponse struct {
	ID        string  `json:"id"`
	ProductID *string `json:"product_id"`
	Quantity  int     `json:"quantity"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	UserID     *string             `json:"user_id"`
	Status     string              `json:"status"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	Items      []orderLineResponse `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderLineResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderLineResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return orderResponse{
		ID:         order.ID,
		UserID:     order.UserID,
		Status:     order.StatusName(),
		TotalPrice: order.TotalPrice,
		Items:      items,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func newOrderResponses(orders []models.Order) []orderResponse {
	responses := make([]orderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, newOrderResponse(&orders[i]))
	}
	return responses
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes. All require authentication;
// status updates additionally require admin.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	orders := router.Group("/orders", auth)
	orders.Post("/", h.HandleCreate)
	orders.Get("/:id", h.HandleGet)
	orders.Put("/:id/status", admin, h.HandleUpdateStatus)
	orders.Delete("/:id", h.HandleCancel)
}

// HandleCreate places an order for the authenticated caller.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	lines := make([]services.OrderLineInput, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, services.OrderLineInput{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
		})
	}

	order, err := h.service.Create(principal.UserID, lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newOrderResponse(order))
}

// HandleGet returns an order with its status and lines. Owner-or-admin.
func (h *OrderHandler) HandleGet(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)

	order, err := h.service.Get(c.Params("id"), principal)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newOrderResponse(order))
}

// HandleUpdateStatus overwrites the order status with any registered one.
// Admin-only.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	order, err := h.service.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newOrderResponse(order))
}

// HandleCancel cancels a pending order. Owner-or-admin.
func (h *OrderHandler) HandleCancel(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)

	if err := h.service.Cancel(c.Params("id"), principal); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
