package services_test

import (
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByName(name string) (*models.Product, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(page, pageSize int) ([]models.Product, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Search(params repositories.ProductSearchParams) ([]models.Product, error) {
	args := m.Called(params)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_Create(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "New Product", Price: price("50.00"), Stock: 20, IsAvailable: true}

	mockRepo.On("GetByName", "New Product").
		Return(nil, apperrors.NotFound("product with name New Product not found")).Once()
	mockRepo.On("Create", newProduct).Return(nil).Once()

	err := service.Create(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Create_DuplicateName(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := &models.Product{ID: "prod-1", Name: "Taken"}
	mockRepo.On("GetByName", "Taken").Return(existing, nil).Once()

	err := service.Create(&models.Product{Name: "Taken", Price: price("5.00")})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_Create_InvalidPrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	err := service.Create(&models.Product{Name: "Freebie", Price: decimal.Zero})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	err = service.Create(&models.Product{Name: "Debt", Price: price("-1.00")})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_GetByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := &models.Product{ID: "prod-1", Name: "Product A", Price: price("10.00"), Stock: 100}

	mockRepo.On("GetByID", "prod-1").Return(expected, nil).Once()
	product, err := service.GetByID("prod-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", "missing").
		Return(nil, apperrors.NotFound("product with ID missing not found")).Once()
	product, err = service.GetByID("missing")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestProductService_List_NormalizesPaging(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("List", 1, 10).Return([]models.Product{}, nil).Once()
	_, err := service.List(0, 0)
	assert.NoError(t, err)

	mockRepo.On("List", 2, 100).Return([]models.Product{}, nil).Once()
	_, err = service.List(2, 5000)
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestProductService_Search(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	min := price("5.00")
	max := price("50.00")
	available := true

	expectedParams := repositories.ProductSearchParams{
		Name:        "lap",
		MinPrice:    &min,
		MaxPrice:    &max,
		IsAvailable: &available,
		SortBy:      "price",
		SortOrder:   "desc",
		Page:        1,
		PageSize:    10,
	}
	mockRepo.On("Search", expectedParams).Return([]models.Product{}, nil).Once()

	_, err := service.Search(repositories.ProductSearchParams{
		Name:        "lap",
		MinPrice:    &min,
		MaxPrice:    &max,
		IsAvailable: &available,
		SortBy:      "price",
		SortOrder:   "desc",
	})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Search_InvalidPriceRange(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	min := price("50.00")
	max := price("5.00")
	_, err := service.Search(repositories.ProductSearchParams{MinPrice: &min, MaxPrice: &max})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Search", mock.Anything)
}

func TestProductService_Update(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := &models.Product{ID: "prod-1", Name: "Product A", Price: price("10.00"), Stock: 100, IsAvailable: true}
	mockRepo.On("GetByID", "prod-1").Return(existing, nil).Once()

	newName := "Product A Plus"
	newPrice := price("12.50")
	mockRepo.On("GetByName", newName).
		Return(nil, apperrors.NotFound("product with name Product A Plus not found")).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	updated, err := service.Update("prod-1", services.ProductUpdate{Name: &newName, Price: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, "Product A Plus", updated.Name)
	assert.True(t, updated.Price.Equal(price("12.50")))
	assert.Equal(t, 100, updated.Stock) // untouched fields stay put
	mockRepo.AssertExpectations(t)
}

func TestProductService_Update_NameConflict(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := &models.Product{ID: "prod-1", Name: "Product A", Price: price("10.00")}
	other := &models.Product{ID: "prod-2", Name: "Product B"}
	mockRepo.On("GetByID", "prod-1").Return(existing, nil).Once()
	mockRepo.On("GetByName", "Product B").Return(other, nil).Once()

	newName := "Product B"
	_, err := service.Update("prod-1", services.ProductUpdate{Name: &newName})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_Delete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Delete", "prod-1").Return(nil).Once()
	assert.NoError(t, service.Delete("prod-1"))

	mockRepo.On("Delete", "missing").
		Return(apperrors.NotFound("product with ID missing not found")).Once()
	err := service.Delete("missing")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}
