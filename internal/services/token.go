package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gymapi/internal/models"
)

// TokenClaims is the identity a bearer token carries.
type TokenClaims struct {
	UserID  uint
	Name    string
	Email   string
	Role    models.UserRole
	IsAdmin bool
}

// TokenService issues and validates HS256 bearer tokens.
type TokenService struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService creates a token service signing with the given key.
func NewTokenService(key, issuer, audience string, ttl time.Duration) *TokenService {
	return &TokenService{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// Generate signs a token embedding the user's id, name, email and role.
// The user id lives in the standard "sub" claim and nowhere else.
func (s *TokenService) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"name":     user.Name,
		"email":    user.Email,
		"role":     string(user.Role),
		"is_admin": user.IsAdmin,
		"iss":      s.issuer,
		"aud":      s.audience,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates signature, issuer, audience and expiry, and returns
// the embedded claims.
func (s *TokenService) Parse(raw string) (*TokenClaims, error) {
	token, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim %q", sub)
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	isAdmin, _ := claims["is_admin"].(bool)

	return &TokenClaims{
		UserID:  uint(id),
		Name:    name,
		Email:   email,
		Role:    models.UserRole(role),
		IsAdmin: isAdmin,
	}, nil
}
