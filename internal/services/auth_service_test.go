package services_test

import (
	"testing"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

const testSecret = "test_jwt_secret"

func newAuthServiceForTest(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, services.AuthConfig{
		SecretKey:     testSecret,
		TokenLifetime: 30 * time.Minute,
	})
}

func hashedUser(password string) *models.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashed),
		IsActive: true,
	}
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo)
	user := hashedUser("password123")

	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()

	token, err := authService.Login("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// The token carries the user ID as its subject.
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "user-123", claims["sub"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo)
	user := hashedUser("password123")

	// Wrong password.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, err := authService.Login("testuser", "wrongpassword")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	// Unknown username gives the same generic error.
	mockRepo.On("GetByUsername", "ghost").
		Return(nil, apperrors.NotFound("user with username ghost not found")).Once()
	_, err = authService.Login("ghost", "password123")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo)

	valid := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	validString, _ := valid.SignedString([]byte(testSecret))

	sub, err := authService.VerifyToken(validString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", sub)

	// Garbage token.
	_, err = authService.VerifyToken("invalid.token.string")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testSecret))
	_, err = authService.VerifyToken(expiredString)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	// Token signed with a different key.
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("other_secret"))
	_, err = authService.VerifyToken(forgedString)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestAuthService_PrincipalFromToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo)
	user := hashedUser("password123")
	user.IsAdmin = true

	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	token, err := authService.Login("testuser", "password123")
	assert.NoError(t, err)

	// The admin flag comes from the directory, not the token.
	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	principal, err := authService.PrincipalFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", principal.UserID)
	assert.Equal(t, "testuser", principal.Username)
	assert.True(t, principal.IsAdmin)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_PrincipalFromToken_InactiveOrDeleted(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthServiceForTest(mockRepo)
	user := hashedUser("password123")

	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Twice()

	// Deleted since the token was issued.
	token, _ := authService.Login("testuser", "password123")
	mockRepo.On("GetByID", "user-123").
		Return(nil, apperrors.NotFound("user with ID user-123 not found")).Once()
	_, err := authService.PrincipalFromToken(token)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	// Deactivated since the token was issued.
	token, _ = authService.Login("testuser", "password123")
	inactive := *user
	inactive.IsActive = false
	mockRepo.On("GetByID", "user-123").Return(&inactive, nil).Once()
	_, err = authService.PrincipalFromToken(token)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestPrincipal_CanAccess(t *testing.T) {
	owner := "user-1"

	assert.True(t, services.Principal{UserID: "user-1"}.CanAccess(&owner))
	assert.False(t, services.Principal{UserID: "user-2"}.CanAccess(&owner))
	assert.True(t, services.Principal{UserID: "user-2", IsAdmin: true}.CanAccess(&owner))

	// Orphaned resources (nulled owner) are admin-only.
	assert.False(t, services.Principal{UserID: "user-1"}.CanAccess(nil))
	assert.True(t, services.Principal{UserID: "user-1", IsAdmin: true}.CanAccess(nil))
}
