package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecom-labs/product-api/internal/hash"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenTTL = time.Hour

// Fixed demo account. Any valid login that is not the configured admin
// identity authenticates into the unprivileged tier.
const (
	fixedUserName     = "user"
	fixedUserPassword = "user123"
)

// Issuer produces signed access tokens for the local authentication mode.
type Issuer struct {
	Secret            []byte
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
}

// Login checks the supplied credentials against the configured admin pair
// first, then the fixed user pair. The caller learns only that the
// combination failed, not which check rejected it.
func (i *Issuer) Login(username, password string) (string, error) {
	var role Role
	switch {
	case username == i.AdminUsername && i.adminPasswordMatches(password):
		role = RoleAdmin
	case username == fixedUserName && password == fixedUserPassword:
		role = RoleUser
	default:
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := AccessClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.Secret)
}

func (i *Issuer) adminPasswordMatches(password string) bool {
	if i.AdminPasswordHash != "" {
		return hash.CheckPassword(i.AdminPasswordHash, password)
	}
	return subtle.ConstantTimeCompare([]byte(i.AdminPassword), []byte(password)) == 1
}
