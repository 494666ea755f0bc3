package repositories

import "storefront/internal/models"

// StatusRepository defines the interface for order status registry access.
type StatusRepository interface {
	Create(status *models.OrderStatus) error
	GetByID(id string) (*models.OrderStatus, error)
	GetByName(name string) (*models.OrderStatus, error)
	GetAll() ([]models.OrderStatus, error)
	Update(status *models.OrderStatus) error
	Delete(id string) error
}
