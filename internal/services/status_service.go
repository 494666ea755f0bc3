package services

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// StatusService handles business logic for the order status registry.
type StatusService struct {
	statusRepo repositories.StatusRepository
	orderRepo  repositories.OrderRepository
}

// NewStatusService creates a new StatusService.
func NewStatusService(statusRepo repositories.StatusRepository, orderRepo repositories.OrderRepository) *StatusService {
	return &StatusService{
		statusRepo: statusRepo,
		orderRepo:  orderRepo,
	}
}

// Create registers a new status name.
func (s *StatusService) Create(name string) (*models.OrderStatus, error) {
	if existing, err := s.statusRepo.GetByName(name); err == nil && existing != nil {
		return nil, apperrors.Conflict("status name '%s' must be unique", name)
	}
	status := &models.OrderStatus{Name: name}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, err
	}
	return status, nil
}

// GetByID retrieves a status by its ID.
func (s *StatusService) GetByID(id string) (*models.OrderStatus, error) {
	return s.statusRepo.GetByID(id)
}

// GetAll retrieves all registered statuses.
func (s *StatusService) GetAll() ([]models.OrderStatus, error) {
	return s.statusRepo.GetAll()
}

// Update renames a status.
func (s *StatusService) Update(id, name string) (*models.OrderStatus, error) {
	status, err := s.statusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.statusRepo.GetByName(name); err == nil && existing != nil && existing.ID != id {
		return nil, apperrors.Conflict("status name '%s' must be unique", name)
	}
	status.Name = name
	if err := s.statusRepo.Update(status); err != nil {
		return nil, err
	}
	return status, nil
}

// Delete removes a status. Deletion is forbidden while any order references
// it.
func (s *StatusService) Delete(id string) error {
	if _, err := s.statusRepo.GetByID(id); err != nil {
		return err
	}

	count, err := s.orderRepo.CountByStatusID(id)
	if err != nil {
		return fmt.Errorf("failed to check status usage: %w", err)
	}
	if count > 0 {
		return apperrors.Conflict("cannot delete status: it is currently in use by an order")
	}

	return s.statusRepo.Delete(id)
}
