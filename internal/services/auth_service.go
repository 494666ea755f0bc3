package services

import (
	"fmt"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Principal is the authenticated identity passed explicitly to every guarded
// operation. It is built once per request by the auth middleware; the admin
// flag comes from the user directory, never from token claims.
type Principal struct {
	UserID   string
	Username string
	IsAdmin  bool
	IsActive bool
}

// CanAccess reports whether the principal may act on a resource owned by
// ownerID. A nil owner (orphaned resource) is admin-only.
func (p Principal) CanAccess(ownerID *string) bool {
	if p.IsAdmin {
		return true
	}
	return ownerID != nil && *ownerID == p.UserID
}

// AuthConfig holds the token signing settings. Passed explicitly at
// construction; the service keeps no ambient state.
type AuthConfig struct {
	SecretKey     string
	Algorithm     string        // signing algorithm name, HS256 by default
	TokenLifetime time.Duration // access token validity window
}

// AuthService verifies credentials and issues and validates bearer tokens.
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      AuthConfig
	method   jwt.SigningMethod
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, cfg AuthConfig) *AuthService {
	if cfg.Algorithm == "" {
		cfg.Algorithm = "HS256"
	}
	if cfg.TokenLifetime <= 0 {
		cfg.TokenLifetime = 30 * time.Minute
	}
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		method:   jwt.GetSigningMethod(cfg.Algorithm),
	}
}

// Login authenticates a user and returns a signed token. Unknown usernames
// and wrong passwords both come back as the same unauthorized error.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}

	now := time.Now()
	token := jwt.NewWithClaims(s.method, jwt.MapClaims{
		"sub": user.ID,
		"exp": now.Add(s.cfg.TokenLifetime).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken validates the token's signature and expiry and returns the
// subject user ID.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperrors.Unauthorized("invalid or expired token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", apperrors.Unauthorized("invalid or expired token")
	}
	return sub, nil
}

// PrincipalFromToken verifies the token and resolves its subject against the
// user directory. Inactive or deleted users are rejected.
func (s *AuthService) PrincipalFromToken(tokenString string) (*Principal, error) {
	userID, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized("user account is inactive")
	}

	return &Principal{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		IsActive: user.IsActive,
	}, nil
}
