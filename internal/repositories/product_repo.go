package repositories

import (
	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// ProductSearchParams carries the catalog search filters. Nil pointer fields
// mean "no filter".
type ProductSearchParams struct {
	Name        string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	IsAvailable *bool
	SortBy      string // name, price or created_at
	SortOrder   string // asc or desc
	Page        int
	PageSize    int
}

// ProductRepository defines the interface for product data access. Stock
// mutation is deliberately absent here: decrements happen only inside the
// order repository's creation transaction.
type ProductRepository interface {
	GetByID(id string) (*models.Product, error)
	GetByName(name string) (*models.Product, error)
	List(page, pageSize int) ([]models.Product, error)
	Search(params ProductSearchParams) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
