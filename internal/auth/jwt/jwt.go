package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bllokusync/bllokusync/internal/apiserver/database"
	"github.com/bllokusync/bllokusync/internal/common/cnst"
)

var (
	ErrInvalidToken    = errors.New("invalid bearer token")
	ErrExpiredToken    = errors.New("bearer token has expired")
	ErrEmptySecretKey  = errors.New("jwt secret key is not configured")
	ErrWeakSecretKey   = errors.New("jwt secret key must be at least 32 characters")
	ErrInvalidDuration = errors.New("jwt token duration must be positive")
)

// Claims is the token payload issued to manager and resident accounts.
// Role carries the account role so the admin guard never needs a user
// lookup. The linked tenant record is deliberately not embedded: a
// tenant record can be linked to an account after its token was issued,
// so handlers resolve it per request instead of trusting a stale claim.
type Claims struct {
	UserID   uint              `json:"uid"`
	Username string            `json:"username"`
	Role     database.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Config holds the signing key and token lifetime
type Config struct {
	SecretKey string        `yaml:"secret_key"`
	Duration  time.Duration `yaml:"duration"`
}

// Service issues and validates HS256 bearer tokens
type Service struct {
	config Config
}

// NewService creates a token service, rejecting configurations that
// would produce unsigned or trivially forgeable tokens
func NewService(config Config) (*Service, error) {
	if config.SecretKey == "" {
		return nil, ErrEmptySecretKey
	}
	if len(config.SecretKey) < 32 {
		return nil, ErrWeakSecretKey
	}
	if config.Duration <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Service{config: config}, nil
}

// GenerateToken issues a signed token for an account
func (s *Service) GenerateToken(userID uint, username string, role database.UserRole) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cnst.AppName,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}

// ValidateToken parses and verifies a token, returning its claims.
// Only HS256 tokens issued by this service are accepted.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(s.config.SecretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cnst.AppName),
	)
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
	return claims, nil
}
