package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"Stowed/internal/config"
	"Stowed/internal/dto"
)

type AuthService interface {
	Login(email, password string) (string, *dto.User, error)
	Verify(token string) (*dto.User, error)
}

type AuthServiceImpl struct {
	cfg config.AuthConfig
}

func NewAuthService(configuration *config.Configuration) AuthService {
	return &AuthServiceImpl{cfg: configuration.Server.Auth}
}

func (s *AuthServiceImpl) account() *dto.User {
	return &dto.User{ID: 1, Email: s.cfg.Email, Name: s.cfg.Email}
}

func (s *AuthServiceImpl) Login(email, password string) (string, *dto.User, error) {
	if email != s.cfg.Email || password != s.cfg.Password {
		return "", nil, &ValidationError{Message: "invalid credentials"}
	}
	ttl := s.cfg.TokenTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, err
	}
	return token, s.account(), nil
}

func (s *AuthServiceImpl) Verify(tokenString string) (*dto.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return nil, &ValidationError{Message: "invalid or expired token"}
	}
	return s.account(), nil
}
