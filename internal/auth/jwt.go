// auth превращает bearer-токен в models.Actor.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/comment-router/internal/config"
	"github.com/pribylovaa/comment-router/internal/models"
)

var (
	// ErrInvalidToken — токен битый, чужой или подписан не тем алгоритмом.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

// Claims — полезная нагрузка access-токена: uid и набор прав пользователя.
type Claims struct {
	UserID      string   `json:"uid"`
	Permissions []string `json:"perms"`
	jwt.RegisteredClaims
}

// Verifier проверяет HS256-токены и выдаёт права анонимному пользователю.
type Verifier struct {
	secret    []byte
	issuer    string
	audience  []string
	anonymous []models.Permission
}

// NewVerifier создаёт Verifier из секции auth конфигурации.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	anon := make([]models.Permission, 0, len(cfg.AnonymousPermissions))
	for _, p := range cfg.AnonymousPermissions {
		if p = strings.TrimSpace(p); p != "" {
			anon = append(anon, models.Permission(p))
		}
	}

	return &Verifier{
		secret:    []byte(cfg.JWTSecret),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		anonymous: anon,
	}
}

// Anonymous — пользователь без токена.
func (v *Verifier) Anonymous() models.Actor {
	return models.Anonymous(v.anonymous...)
}

// FromHeader разбирает заголовок Authorization. Пустой заголовок — анонимный пользователь.
func (v *Verifier) FromHeader(header string) (models.Actor, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return v.Anonymous(), nil
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return models.Actor{}, ErrInvalidToken
	}

	return v.Actor(strings.TrimSpace(token))
}

// Actor проверяет токен и возвращает пользователя из его claims.
func (v *Verifier) Actor(tokenStr string) (models.Actor, error) {
	const op = "auth.jwt.Actor"

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5 * time.Second),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if len(v.audience) > 0 {
		opts = append(opts, jwt.WithAudience(v.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
			}

			return v.secret, nil
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Actor{}, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return models.Actor{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return models.Actor{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil || uid == uuid.Nil {
		return models.Actor{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	perms := make([]models.Permission, 0, len(claims.Permissions))
	for _, p := range claims.Permissions {
		perms = append(perms, models.Permission(p))
	}

	return models.Actor{ID: uid, Permissions: perms}, nil
}

// Issue подписывает токен для пользователя (локальная отладка, тесты).
func (v *Verifier) Issue(userID uuid.UUID, perms []models.Permission, ttl time.Duration, now time.Time) (string, error) {
	const op = "auth.jwt.Issue"

	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, string(p))
	}

	claims := Claims{
		UserID:      userID.String(),
		Permissions: names,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    v.issuer,
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings(v.audience),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}
