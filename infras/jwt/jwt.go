package jwt

import (
	"errors"
	"fmt"
	"salon/config"
	"salon/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header is required")
)

const bearerPrefix = "Bearer "

// TokenType represents the type of JWT token
type TokenType string

const (
	AccessToken TokenType = "access"
)

// Claims represents the JWT claims structure
type Claims struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role,omitempty"`
	TokenID string    `json:"token_id"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

// JWT validates access tokens issued by the identity provider. GenerateAccessToken
// signs tokens with the same secret for local tooling and tests.
type JWT interface {
	GenerateAccessToken(userID, email, role string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type Service struct {
	config *config.Config
}

func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

func (s *Service) GenerateAccessToken(userID, email, role string) (string, error) {
	issuedAt := timezone.Now()
	expiresAt := issuedAt.Add(time.Duration(s.config.JWT.AccessExpireMin) * time.Minute)
	tokenID := uuid.NewString()

	claims := Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		TokenID: tokenID,
		Type:    AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.config.App.Name,
			Subject:   userID,
			ID:        tokenID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.AccessSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken validates and parses an access token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.config.JWT.AccessSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != AccessToken || claims.UserID == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingToken
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return strings.TrimPrefix(authHeader, bearerPrefix), nil
}
