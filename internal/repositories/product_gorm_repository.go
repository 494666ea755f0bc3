package repositories

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("product with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByName retrieves a single product by its unique name.
func (r *GORMProductRepository) GetByName(name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("product with name %s not found", name)
		}
		return nil, fmt.Errorf("failed to get product by name %s: %w", name, err)
	}
	return &product, nil
}

// List retrieves a page of products.
func (r *GORMProductRepository) List(page, pageSize int) ([]models.Product, error) {
	var products []models.Product
	offset := (page - 1) * pageSize
	if err := r.db.Offset(offset).Limit(pageSize).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// sortColumns whitelists the sortable fields so user input never reaches the
// ORDER BY clause directly.
var sortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
}

// Search retrieves products matching the given filters, sorted and paginated.
func (r *GORMProductRepository) Search(params ProductSearchParams) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})

	if params.Name != "" {
		query = query.Where("name LIKE ?", "%"+params.Name+"%")
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", params.MaxPrice)
	}
	if params.IsAvailable != nil {
		query = query.Where("is_available = ?", *params.IsAvailable)
	}

	column, ok := sortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "asc"
	if params.SortOrder == "desc" {
		direction = "desc"
	}
	query = query.Order(column + " " + direction)

	offset := (params.Page - 1) * params.PageSize
	var products []models.Product
	if err := query.Offset(offset).Limit(params.PageSize).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// Create creates a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("product name '%s' already exists", product.Name)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return apperrors.Conflict("product name '%s' already exists", product.Name)
		}
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s not found", product.ID)
	}
	return nil
}

// Delete deletes a product by its ID. Order lines keep a nulled product
// reference per the schema's SET NULL constraint.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product with ID %s not found", id)
	}
	return nil
}
