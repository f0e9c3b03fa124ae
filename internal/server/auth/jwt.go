// Package auth issues and verifies the admin tokens gating the suggestion
// listing endpoint.
package auth

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lovelab-app/lovelab/internal/common"
)

const adminRole = "admin"

// Claims carries the standard registered claims plus the holder's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Manager checks the admin password and mints short-lived HS256 tokens.
type Manager struct {
	secret   []byte
	validity time.Duration
	password string
}

func NewManager(secret []byte, validity time.Duration, password string) *Manager {
	return &Manager{secret: secret, validity: validity, password: password}
}

// Login exchanges the admin password for a signed token. An empty
// configured password disables admin access entirely.
func (m *Manager) Login(password string) (string, error) {
	if m.password == "" ||
		subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", common.ErrUnauthorized
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.validity)),
		},
		Role: adminRole,
	})
	return token.SignedString(m.secret)
}

// Verify validates a token string and its admin role.
func (m *Manager) Verify(tokenString string) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Role != adminRole {
		return common.ErrInvalidToken
	}
	return nil
}
