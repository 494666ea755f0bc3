package repositories

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create persists the order header, its lines and the stock decrements in one
// transaction. A decrement is a guarded UPDATE (stock >= quantity) so two
// concurrent orders cannot both take the last units; zero rows affected rolls
// the whole order back with an insufficient-stock error.
func (r *GORMOrderRepository) Create(order *models.Order, decrements []StockDecrement) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for _, d := range decrements {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", d.ProductID, d.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", d.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", d.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %s: %w", d.ProductID, apperrors.ErrInsufficientStock)
			}
		}
		return nil
	})
}

// GetByID retrieves an order with its status and lines.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Status").Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUserID retrieves all orders owned by the given user.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Status").Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// UpdateStatus replaces the order's status reference.
func (r *GORMOrderRepository) UpdateStatus(orderID, statusID string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status_id", statusID)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("order with ID %s not found", orderID)
	}
	return nil
}

// HasActiveOrders reports whether the user owns any order whose status is
// neither completed nor canceled. Orders with a nulled status reference do
// not count.
func (r *GORMOrderRepository) HasActiveOrders(userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Joins("JOIN order_statuses ON order_statuses.id = orders.status_id").
		Where("orders.user_id = ?", userID).
		Where("order_statuses.name NOT IN ?", []string{models.StatusCompleted, models.StatusCanceled}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count active orders for user %s: %w", userID, err)
	}
	return count > 0, nil
}

// CountByStatusID counts orders referencing the given status.
func (r *GORMOrderRepository) CountByStatusID(statusID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("status_id = ?", statusID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders for status %s: %w", statusID, err)
	}
	return count, nil
}
