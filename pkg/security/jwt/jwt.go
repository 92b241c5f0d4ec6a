package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artem13815/resumebuilder/pkg/auth"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongIssuer  = errors.New("invalid token issuer")
)

// Claims включает стандартные и наш флаг администратора.
type Claims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"is_admin"`
}

// Generator выпускает HS256 токены для auth.TokenGenerator.
type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

func (g *Generator) Generate(_ context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		IsAdmin: user.IsAdmin,
	})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verifier проверяет подпись, срок и издателя. Пустой issuer не проверяется.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify разбирает токен в Principal.
func (v *Verifier) Verify(raw string) (auth.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return auth.Principal{}, ErrInvalidToken
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return auth.Principal{}, ErrWrongIssuer
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return auth.Principal{}, ErrInvalidToken
	}
	return auth.Principal{UserID: id, IsAdmin: claims.IsAdmin}, nil
}
