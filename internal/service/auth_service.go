package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lshigami/edugress/config"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(username, password string) (*dto.LoginResponse, error)
	// Authenticate resolves a session key to its user.
	Authenticate(token string) (*model.User, error)
	Register(req RegisterUser) (*model.User, error)
	Profile(user *model.User) dto.LoginResponse
}

type RegisterUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      int
	Coins     decimal.Decimal
	IsOffline bool
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &authService{userRepo: userRepo, secret: []byte(cfg.Auth.JWTSecret), ttl: ttl}
}

func (s *authService) Register(req RegisterUser) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, invalid("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Coins:        req.Coins,
		IsOffline:    req.IsOffline,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("create user %q: %w", req.Username, err)
	}
	return user, nil
}

func (s *authService) Login(username, password string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(notFound(err, "user"), ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Info().Str("username", username).Msg("Login rejected")
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	key, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session key: %w", err)
	}
	resp := s.Profile(user)
	resp.Key = key
	return &resp, nil
}

func (s *authService) Authenticate(token string) (*model.User, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	user, err := s.userRepo.FindByID(uint(id))
	if err != nil {
		if errors.Is(notFound(err, "user"), ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Profile(user *model.User) dto.LoginResponse {
	return dto.LoginResponse{User: toDomainUser(user)}
}
