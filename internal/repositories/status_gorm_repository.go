package repositories

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMStatusRepository is a GORM implementation of StatusRepository.
type GORMStatusRepository struct {
	db *gorm.DB
}

// NewGORMStatusRepository creates a new instance of GORMStatusRepository.
func NewGORMStatusRepository(db *gorm.DB) *GORMStatusRepository {
	return &GORMStatusRepository{db: db}
}

// Create creates a new order status.
func (r *GORMStatusRepository) Create(status *models.OrderStatus) error {
	if status.ID == "" {
		status.ID = uuid.New().String()
	}
	if err := r.db.Create(status).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("status name '%s' must be unique", status.Name)
		}
		return fmt.Errorf("failed to create status: %w", err)
	}
	return nil
}

// GetByID retrieves a status by its ID.
func (r *GORMStatusRepository) GetByID(id string) (*models.OrderStatus, error) {
	var status models.OrderStatus
	if err := r.db.First(&status, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("status with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get status by ID %s: %w", id, err)
	}
	return &status, nil
}

// GetByName retrieves a status by its unique name.
func (r *GORMStatusRepository) GetByName(name string) (*models.OrderStatus, error) {
	var status models.OrderStatus
	if err := r.db.First(&status, "name = ?", name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("status with name %s not found", name)
		}
		return nil, fmt.Errorf("failed to get status by name %s: %w", name, err)
	}
	return &status, nil
}

// GetAll retrieves all registered statuses.
func (r *GORMStatusRepository) GetAll() ([]models.OrderStatus, error) {
	var statuses []models.OrderStatus
	if err := r.db.Find(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to get all statuses: %w", err)
	}
	return statuses, nil
}

// Update saves an existing status.
func (r *GORMStatusRepository) Update(status *models.OrderStatus) error {
	res := r.db.Save(status)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return apperrors.Conflict("status name '%s' must be unique", status.Name)
		}
		return fmt.Errorf("failed to update status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("status with ID %s not found", status.ID)
	}
	return nil
}

// Delete deletes a status by its ID. Referencing orders are guarded at the
// service layer.
func (r *GORMStatusRepository) Delete(id string) error {
	res := r.db.Delete(&models.OrderStatus{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("status with ID %s not found", id)
	}
	return nil
}
