package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"
	"github.com/Nishantvidhuri/storebackend/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence surface account management needs
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	FindOtherUserByEmailOrUsername(ctx context.Context, email, username string, excludeID int64) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// Identity is the authenticated caller extracted from a token
type Identity struct {
	UserID  int64
	Email   string
	IsAdmin bool
}

// AuthService handles accounts and bearer tokens
type AuthService struct {
	store    UserStore
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(store UserStore, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		store:    store,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   util.GetLogger(),
	}
}

// RegisterRequest is the signup body
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates an account and returns a signed token with it
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (string, *models.User, error) {
	existing, err := s.store.FindUserByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		if existing.Email == req.Email {
			return "", nil, ErrEmailRegistered
		}
		return "", nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return token, user, nil
}

// Login checks credentials and returns a signed token with the account
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseToken validates a bearer token and extracts the caller identity
func (s *AuthService) ParseToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	email, _ := claims["email"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return &Identity{UserID: int64(userID), Email: email, IsAdmin: isAdmin}, nil
}

// GetUser retrieves an account by id
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves all accounts
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.GetUsers(ctx)
}

// UpdateProfileRequest patches the caller's own account; nil means keep
type UpdateProfileRequest struct {
	Username *string                 `json:"username"`
	Email    *string                 `json:"email"`
	Phone    *string                 `json:"phone"`
	Address  *models.ShippingAddress `json:"shippingAddress"`
}

// UpdateProfile patches the caller's account after a uniqueness check
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil || req.Email != nil {
		email, username := user.Email, user.Username
		if req.Email != nil {
			email = *req.Email
		}
		if req.Username != nil {
			username = *req.Username
		}
		other, err := s.store.FindOtherUserByEmailOrUsername(ctx, email, username, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if other != nil {
			if req.Username != nil && other.Username == *req.Username {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailRegistered
		}
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// AdminUpdateUserRequest patches any account; nil means keep
type AdminUpdateUserRequest struct {
	Username *string                 `json:"username"`
	Email    *string                 `json:"email"`
	Phone    *string                 `json:"phone"`
	IsAdmin  *bool                   `json:"isAdmin"`
	Password *string                 `json:"password"`
	Address  *models.ShippingAddress `json:"shippingAddress"`
}

// AdminUpdateUser patches an account, optionally rehashing the password
func (s *AuthService) AdminUpdateUser(ctx context.Context, id int64, req *AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes an account; an admin cannot delete their own
func (s *AuthService) DeleteUser(ctx context.Context, callerID, id int64) error {
	if callerID == id {
		return ErrSelfDelete
	}

	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	err := s.store.DeleteUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}
