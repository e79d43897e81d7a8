package services

import (
	"errors"
	"fmt"
	"time"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrInvalidCredentials is returned by LoginUser for unknown users, bad passwords and inactive accounts.
	ErrInvalidCredentials = apperror.New(apperror.ErrNotAuthenticated, "No active account found with the given credentials")
	// ErrInvalidToken is returned for malformed, expired, wrongly signed or wrongly typed tokens.
	ErrInvalidToken = apperror.New(apperror.ErrNotAuthenticated, "Given token not valid for any token type")
	// ErrUserNotFound is returned when a valid token names a user that no longer exists or is inactive.
	ErrUserNotFound = apperror.New(apperror.ErrNotAuthenticated, "User not found")
)

// TokenConfig controls token signing and lifetimes.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenPair is returned by a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, cfg TokenConfig) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// RegisterUser hashes the password and saves a new active user.
func (s *AuthService) RegisterUser(username, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, apperror.New(apperror.ErrConflict, fmt.Sprintf("username '%s' already taken", username))
	} else if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.New(apperror.ErrConflict, fmt.Sprintf("username '%s' already taken", username))
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser checks the credentials and issues an access/refresh token pair.
func (s *AuthService) LoginUser(username, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		// do not reveal whether the username exists
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.issue(user, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issue(user, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := s.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	user, err := s.userFromClaims(claims)
	if err != nil {
		return "", err
	}
	return s.issue(user, TokenTypeAccess, s.accessTTL)
}

// Authenticate resolves an access token to the active user it was issued for.
func (s *AuthService) Authenticate(accessToken string) (*models.User, error) {
	claims, err := s.ValidateToken(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return s.userFromClaims(claims)
}

// ValidateToken parses and validates a JWT token of the wanted type, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != wantType {
		return nil, fmt.Errorf("%w: token type %q, want %q", ErrInvalidToken, tokenType, wantType)
	}
	return claims, nil
}

func (s *AuthService) issue(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"username":   user.Username,
		"token_type": tokenType,
		"jti":        uuid.New().String(),
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s token: %w", tokenType, err)
	}
	return tokenString, nil
}

func (s *AuthService) userFromClaims(claims jwt.MapClaims) (*models.User, error) {
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return user, nil
}
