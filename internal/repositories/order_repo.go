package repositories

import "storefront/internal/models"

// StockDecrement is one product quantity to reserve inside the order
// creation transaction.
type StockDecrement struct {
	ProductID string
	Quantity  int
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists the order header, its lines and the stock decrements
	// in a single transaction. Either everything is visible afterwards or
	// nothing is.
	Create(order *models.Order, decrements []StockDecrement) error
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	UpdateStatus(orderID, statusID string) error
	// HasActiveOrders reports whether the user owns any order whose status
	// is neither completed nor canceled.
	HasActiveOrders(userID string) (bool, error)
	CountByStatusID(statusID string) (int64, error)
}
