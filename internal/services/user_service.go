package services

import (
	"fmt"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserUpdate carries a partial user update. Nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// UserService handles business logic for the user directory.
type UserService struct {
	userRepo  repositories.UserRepository
	orderRepo repositories.OrderRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, orderRepo repositories.OrderRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// Register hashes the user's password and persists the account. New accounts
// are active and never admin. The uniqueness pre-checks give friendly
// messages; the store's unique indexes remain the authoritative guard.
func (s *UserService) Register(user *models.User) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return apperrors.Conflict("username '%s' already taken", user.Username)
	}
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return apperrors.Conflict("email '%s' already registered", user.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	user.IsAdmin = false
	user.IsActive = true

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// GetByID retrieves a single user.
func (s *UserService) GetByID(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetAll retrieves all users.
func (s *UserService) GetAll() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// Update applies a partial update. A new email must not collide with another
// account; a new password is re-hashed.
func (s *UserService) Update(id string, update UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		if existing, err := s.userRepo.GetByEmail(*update.Email); err == nil && existing != nil && existing.ID != id {
			return nil, apperrors.Conflict("email '%s' already registered", *update.Email)
		}
		user.Email = *update.Email
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Deletion is blocked while the user owns any order in
// a non-terminal status; orders they did own keep a nulled owner reference.
func (s *UserService) Delete(id string) error {
	if _, err := s.userRepo.GetByID(id); err != nil {
		return err
	}

	active, err := s.orderRepo.HasActiveOrders(id)
	if err != nil {
		return fmt.Errorf("failed to check active orders: %w", err)
	}
	if active {
		return apperrors.Conflict("cannot delete user with active orders")
	}

	return s.userRepo.Delete(id)
}

// ChangeRole grants or revokes admin privileges.
func (s *UserService) ChangeRole(id string, isAdmin bool) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	user.IsAdmin = isAdmin
	return s.userRepo.Update(user)
}
