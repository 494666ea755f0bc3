package handlers

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	Name        string          `json:"name" validate:"required,min=3,max=255"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
	IsAvailable *bool           `json:"is_available"`
}

type updateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=3,max=255"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	IsAvailable *bool            `json:"is_available"`
}

type searchProductsQuery struct {
	Name        string           `query:"name"`
	MinPrice    *decimal.Decimal `query:"min_price"`
	MaxPrice    *decimal.Decimal `query:"max_price"`
	IsAvailable *bool            `query:"is_available"`
	SortBy      string           `query:"sort_by" validate:"omitempty,oneof=name price created_at"`
	SortOrder   string           `query:"sort_order" validate:"omitempty,oneof=asc desc"`
	Page        int              `query:"page"`
	PageSize    int              `query:"page_size"`
}

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Reads are public; mutations
// are admin-only. /search precedes /:id so it is not captured as an ID.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	products := router.Group("/products")
	products.Get("/search", h.HandleSearch)
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGet)
	products.Post("/", auth, admin, h.HandleCreate)
	products.Put("/:id", auth, admin, h.HandleUpdate)
	products.Delete("/:id", auth, admin, h.HandleDelete)
}

// HandleList returns a page of products.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	products, err := h.service.List(page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleSearch returns products matching the query filters.
func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	var query searchProductsQuery
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid search parameters",
		})
	}
	if err := h.validate.Struct(query); err != nil {
		return respondValidation(c, err)
	}

	products, err := h.service.Search(repositories.ProductSearchParams{
		Name:        query.Name,
		MinPrice:    query.MinPrice,
		MaxPrice:    query.MaxPrice,
		IsAvailable: query.IsAvailable,
		SortBy:      query.SortBy,
		SortOrder:   query.SortOrder,
		Page:        query.Page,
		PageSize:    query.PageSize,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGet returns a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreate adds a product to the catalog. Admin-only.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsAvailable: available,
	}
	if err := h.service.Create(product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate applies a partial update to a product. Admin-only.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.service.Update(c.Params("id"), services.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDelete removes a product. Admin-only.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
