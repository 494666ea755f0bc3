package services

import (
	"encoding/json"
	"fmt"
	"log"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// EventPublisher publishes order lifecycle events. *rabbitmq.Client satisfies
// it; a nil publisher disables events.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderLineInput is one requested (product, quantity) pair.
type OrderLineInput struct {
	ProductID string
	Quantity  int
}

// OrderService orchestrates the order workflow: catalog reads, price
// computation, status assignment and transactional persistence.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	statusRepo  repositories.StatusRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	statusRepo repositories.StatusRepository,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		statusRepo:  statusRepo,
		publisher:   publisher,
	}
}

// Create places an order for the given user. Every line's product must exist,
// be available and have sufficient stock; the total is the exact decimal sum
// of unit price times quantity. The order header, its lines and the stock
// decrements commit in one transaction, so a failure leaves no partial state.
func (s *OrderService) Create(userID string, lines []OrderLineInput) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, apperrors.Validation("an order requires at least one line")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperrors.Validation("quantity must be positive for product %s", line.ProductID)
		}
	}

	pending, err := s.statusRepo.GetByName(models.StatusPending)
	if err != nil {
		return nil, apperrors.Configuration("default status '%s' not found", models.StatusPending)
	}

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	decrements := make([]repositories.StockDecrement, 0, len(lines))

	for _, line := range lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsAvailable {
			return nil, fmt.Errorf("product '%s': %w", product.Name, apperrors.ErrProductUnavailable)
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("product '%s': %w", product.Name, apperrors.ErrInsufficientStock)
		}

		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		productID := line.ProductID
		items = append(items, models.OrderItem{
			ProductID: &productID,
			Quantity:  line.Quantity,
		})
		decrements = append(decrements, repositories.StockDecrement{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order := &models.Order{
		UserID:     &userID,
		StatusID:   &pending.ID,
		TotalPrice: total,
		Items:      items,
	}

	if err := s.orderRepo.Create(order, decrements); err != nil {
		return nil, err
	}
	order.Status = pending

	s.publishEvent("order.created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  userID,
		"status":   pending.Name,
		"total":    order.TotalPrice.String(),
	})

	return order, nil
}

// Get retrieves an order with its status and lines. Only the owner or an
// admin may see it.
func (s *OrderService) Get(orderID string, principal Principal) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !principal.CanAccess(order.UserID) {
		return nil, apperrors.Forbidden("you do not have permission to view this order")
	}
	return order, nil
}

// ListForUser retrieves all orders owned by the given user. No orders is an
// empty slice, not an error.
func (s *OrderService) ListForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// UpdateStatus replaces the order's status with any registered one. The
// registry defines no transition graph, so any known name may follow any
// other. Admin-only, enforced by the caller.
func (s *OrderService) UpdateStatus(orderID, statusName string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}

	status, err := s.statusRepo.GetByName(statusName)
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", statusName, apperrors.ErrInvalidStatus)
	}

	if err := s.orderRepo.UpdateStatus(order.ID, status.ID); err != nil {
		return nil, err
	}
	order.StatusID = &status.ID
	order.Status = status

	s.publishEvent("order.status_changed", map[string]interface{}{
		"order_id": order.ID,
		"status":   status.Name,
	})

	return order, nil
}

// Cancel sets a pending order to canceled. Only the owner or an admin may
// cancel, and only while the order is still pending. Reserved stock is not
// returned to the catalog.
func (s *OrderService) Cancel(orderID string, principal Principal) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if !principal.CanAccess(order.UserID) {
		return apperrors.Forbidden("you do not have permission to cancel this order")
	}
	if order.StatusName() != models.StatusPending {
		return fmt.Errorf("order %s is %s: %w", orderID, order.StatusName(), apperrors.ErrInvalidTransition)
	}

	canceled, err := s.statusRepo.GetByName(models.StatusCanceled)
	if err != nil {
		return apperrors.Configuration("status '%s' not found", models.StatusCanceled)
	}

	if err := s.orderRepo.UpdateStatus(order.ID, canceled.ID); err != nil {
		return err
	}

	s.publishEvent("order.canceled", map[string]interface{}{
		"order_id": order.ID,
		"status":   canceled.Name,
	})

	return nil
}

// publishEvent sends a best-effort order event. Publish failures are logged,
// never surfaced: the store is the source of truth.
func (s *OrderService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(rabbitmq.OrderExchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
