package services_test

import (
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newStatusServiceForTest() (*services.StatusService, *MockStatusRepository, *MockOrderRepository) {
	statusRepo := new(MockStatusRepository)
	orderRepo := new(MockOrderRepository)
	return services.NewStatusService(statusRepo, orderRepo), statusRepo, orderRepo
}

func TestStatusService_Create(t *testing.T) {
	service, statusRepo, _ := newStatusServiceForTest()

	statusRepo.On("GetByName", "shipped").
		Return(nil, apperrors.NotFound("status with name shipped not found")).Once()
	statusRepo.On("Create", mock.AnythingOfType("*models.OrderStatus")).Return(nil).Once()

	status, err := service.Create("shipped")
	assert.NoError(t, err)
	assert.Equal(t, "shipped", status.Name)
	statusRepo.AssertExpectations(t)
}

func TestStatusService_Create_DuplicateName(t *testing.T) {
	service, statusRepo, _ := newStatusServiceForTest()

	statusRepo.On("GetByName", models.StatusPending).
		Return(&models.OrderStatus{ID: "status-1", Name: models.StatusPending}, nil).Once()

	_, err := service.Create(models.StatusPending)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	statusRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestStatusService_Update(t *testing.T) {
	service, statusRepo, _ := newStatusServiceForTest()

	existing := &models.OrderStatus{ID: "status-1", Name: "shiped"}
	statusRepo.On("GetByID", "status-1").Return(existing, nil).Once()
	statusRepo.On("GetByName", "shipped").
		Return(nil, apperrors.NotFound("status with name shipped not found")).Once()
	statusRepo.On("Update", mock.AnythingOfType("*models.OrderStatus")).Return(nil).Once()

	status, err := service.Update("status-1", "shipped")
	assert.NoError(t, err)
	assert.Equal(t, "shipped", status.Name)
	statusRepo.AssertExpectations(t)
}

func TestStatusService_Delete(t *testing.T) {
	service, statusRepo, orderRepo := newStatusServiceForTest()

	statusRepo.On("GetByID", "status-1").
		Return(&models.OrderStatus{ID: "status-1", Name: "shipped"}, nil).Once()
	orderRepo.On("CountByStatusID", "status-1").Return(int64(0), nil).Once()
	statusRepo.On("Delete", "status-1").Return(nil).Once()

	assert.NoError(t, service.Delete("status-1"))
	statusRepo.AssertExpectations(t)
}

func TestStatusService_Delete_InUse(t *testing.T) {
	service, statusRepo, orderRepo := newStatusServiceForTest()

	statusRepo.On("GetByID", "status-1").
		Return(&models.OrderStatus{ID: "status-1", Name: models.StatusPending}, nil).Once()
	orderRepo.On("CountByStatusID", "status-1").Return(int64(3), nil).Once()

	err := service.Delete("status-1")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "in use")
	statusRepo.AssertNotCalled(t, "Delete", mock.Anything)
}
