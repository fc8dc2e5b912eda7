package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ecom-labs/product-api/internal/auth"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, role string, expiresAt time.Time) string {
	t.Helper()
	claims := auth.AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "someone",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func newProtectedEcho(required auth.Role) *echo.Echo {
	e := echo.New()
	verifier := &auth.LocalVerifier{Secret: testSecret}
	mws := []echo.MiddlewareFunc{RequireUser(verifier)}
	if required > auth.RoleUser {
		mws = append(mws, RequireRole(required))
	}
	e.GET("/protected", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(CtxUsername).(string))
	}, mws...)
	return e
}

func get(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireUserMissingToken(t *testing.T) {
	e := newProtectedEcho(auth.RoleUser)
	require.Equal(t, http.StatusUnauthorized, get(e, "").Code)
}

func TestRequireUserMalformedToken(t *testing.T) {
	e := newProtectedEcho(auth.RoleUser)
	require.Equal(t, http.StatusUnauthorized, get(e, "not-a-jwt").Code)
}

func TestRequireUserExpiredToken(t *testing.T) {
	e := newProtectedEcho(auth.RoleUser)
	expired := signToken(t, "User", time.Now().Add(-time.Minute))
	require.Equal(t, http.StatusUnauthorized, get(e, expired).Code)
}

func TestRequireUserValidToken(t *testing.T) {
	e := newProtectedEcho(auth.RoleUser)
	token := signToken(t, "User", time.Now().Add(time.Hour))

	rec := get(e, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "someone", rec.Body.String())
}

// Forbidden must be observably different from unauthenticated: a valid
// non-admin token gets 403, not 401.
func TestRequireRoleForbiddenVsUnauthenticated(t *testing.T) {
	e := newProtectedEcho(auth.RoleAdmin)

	require.Equal(t, http.StatusUnauthorized, get(e, "").Code)

	userToken := signToken(t, "User", time.Now().Add(time.Hour))
	require.Equal(t, http.StatusForbidden, get(e, userToken).Code)

	adminToken := signToken(t, "Admin", time.Now().Add(time.Hour))
	require.Equal(t, http.StatusOK, get(e, adminToken).Code)
}

func TestRequireRoleIgnoresUnknownRoleStrings(t *testing.T) {
	e := newProtectedEcho(auth.RoleAdmin)

	// any role string other than Admin is just an unprivileged user
	token := signToken(t, "moderator", time.Now().Add(time.Hour))
	require.Equal(t, http.StatusForbidden, get(e, token).Code)
}
