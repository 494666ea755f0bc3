package models

import "time"

// Canonical order lifecycle labels. The registry may carry additional names;
// these four are seeded at boot.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
)

// OrderStatus is a registry entry naming an order lifecycle state.
type OrderStatus struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=1,max=50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Orders []Order `json:"-" gorm:"foreignKey:StatusID;constraint:OnDelete:SET NULL"`
}
