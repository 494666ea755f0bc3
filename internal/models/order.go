package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer order. TotalPrice is computed once at creation and
// never recomputed. UserID and StatusID stay nullable so an order survives
// deletion of its owner or status.
type Order struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     *string         `json:"user_id" gorm:"type:varchar(36);index"`
	StatusID   *string         `json:"-" gorm:"type:varchar(36);index"`
	Status     *OrderStatus    `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:numeric(10,2)"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// StatusName returns the resolved status label, or "" when the status
// reference has been nulled out.
func (o *Order) StatusName() string {
	if o.Status == nil {
		return ""
	}
	return o.Status.Name
}

// OrderItem is one (product, quantity) line within an order. Lines are
// immutable once created.
type OrderItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string    `json:"order_id" gorm:"type:varchar(36);index"`
	ProductID *string   `json:"product_id" gorm:"type:varchar(36);index"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
