package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/projectblurimedia/Veggie-Tracker/internal/model"
	"github.com/projectblurimedia/Veggie-Tracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DTOs for Request validation
type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"isAdmin"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// UserService registers operators and issues their access tokens
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetUser(ctx context.Context, id string) (*UserResponse, error)
}

type userService struct {
	repo     repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{
		repo:     repo,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

const minPasswordLength = 6

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

// issueToken signs an HS256 token carrying the user's identity and admin flag.
func (s *userService) issueToken(user *model.User) (*AuthResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"isAdmin":  user.IsAdmin,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: toUserResponse(user), Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || username == "" {
		return nil, validationError("First name, last name and username are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, validationError("Password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, conflict("Username already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Username:  username,
		Password:  string(hashedPassword),
		IsAdmin:   req.IsAdmin,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("Username already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user)
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	invalid := &Error{Kind: ErrUnauthorized, Message: "Invalid username or password"}

	user, err := s.repo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, invalid
	}

	return s.issueToken(user)
}

func (s *userService) GetUser(ctx context.Context, id string) (*UserResponse, error) {
	uid, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, lookupError(err, "User")
	}
	res := toUserResponse(user)
	return &res, nil
}
