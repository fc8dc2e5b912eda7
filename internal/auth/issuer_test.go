package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ecom-labs/product-api/internal/hash"
)

var testSecret = []byte("test-secret")

func newTestIssuer() *Issuer {
	return &Issuer{
		Secret:        testSecret,
		AdminUsername: "admin",
		AdminPassword: "admin123",
	}
}

func TestLoginAdmin(t *testing.T) {
	token, err := newTestIssuer().Login("admin", "admin123")
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.Equal(t, "Admin", claims.Role)
}

func TestLoginFixedUser(t *testing.T) {
	token, err := newTestIssuer().Login("user", "user123")
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "user", claims.Subject)
	require.Equal(t, "User", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	i := newTestIssuer()

	cases := []struct{ username, password string }{
		{"admin", "wrong"},
		{"user", "wrong"},
		{"admin", "user123"},
		{"user", "admin123"},
		{"nobody", "nothing"},
		{"", ""},
	}
	for _, tc := range cases {
		_, err := i.Login(tc.username, tc.password)
		require.ErrorIs(t, err, ErrInvalidCredentials, "username=%q password=%q", tc.username, tc.password)
	}
}

func TestLoginTokenExpiresInOneHour(t *testing.T) {
	token, err := newTestIssuer().Login("admin", "admin123")
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginAdminPasswordHash(t *testing.T) {
	pwHash, err := hash.HashPassword("s3cret")
	require.NoError(t, err)

	i := &Issuer{
		Secret:            testSecret,
		AdminUsername:     "admin",
		AdminPasswordHash: pwHash,
	}

	token, err := i.Login("admin", "s3cret")
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "Admin", claims.Role)

	_, err = i.Login("admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := newTestIssuer().Login("admin", "admin123")
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("other-secret"))
	require.Error(t, err)
}
