package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents an item in the catalog. Price is a fixed two-decimal
// amount; stock never goes negative.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" gorm:"uniqueIndex;type:varchar(255)" validate:"required,min=3,max=255"`
	Description string          `json:"description" gorm:"type:text" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2)"`
	Stock       int             `json:"stock" validate:"gte=0"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	OrderItems []OrderItem `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
}
