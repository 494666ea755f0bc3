package services

import (
	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProductUpdate carries a partial product update. Nil fields are left
// unchanged.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	IsAvailable *bool
}

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// List retrieves a page of products. An empty page is not an error.
func (s *ProductService) List(page, pageSize int) ([]models.Product, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.repo.List(page, pageSize)
}

// Search retrieves products matching the given filters.
func (s *ProductService) Search(params repositories.ProductSearchParams) ([]models.Product, error) {
	params.Page, params.PageSize = normalizePage(params.Page, params.PageSize)
	if params.MinPrice != nil && params.MaxPrice != nil && params.MinPrice.GreaterThan(*params.MaxPrice) {
		return nil, apperrors.Validation("min_price must not exceed max_price")
	}
	return s.repo.Search(params)
}

// Create validates and persists a new product.
func (s *ProductService) Create(product *models.Product) error {
	if !product.Price.IsPositive() {
		return apperrors.Validation("price must be positive")
	}
	if product.Stock < 0 {
		return apperrors.Validation("stock must not be negative")
	}
	if existing, err := s.repo.GetByName(product.Name); err == nil && existing != nil {
		return apperrors.Conflict("product name '%s' already exists", product.Name)
	}
	return s.repo.Create(product)
}

// Update applies a partial update to an existing product.
func (s *ProductService) Update(id string, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if existing, err := s.repo.GetByName(*update.Name); err == nil && existing != nil && existing.ID != id {
			return nil, apperrors.Conflict("product name '%s' already exists", *update.Name)
		}
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		if !update.Price.IsPositive() {
			return nil, apperrors.Validation("price must be positive")
		}
		product.Price = *update.Price
	}
	if update.Stock != nil {
		if *update.Stock < 0 {
			return nil, apperrors.Validation("stock must not be negative")
		}
		product.Stock = *update.Stock
	}
	if update.IsAvailable != nil {
		product.IsAvailable = *update.IsAvailable
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete deletes a product by its ID.
func (s *ProductService) Delete(id string) error {
	return s.repo.Delete(id)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
