package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecom-labs/product-api/internal/auth"
	"github.com/ecom-labs/product-api/internal/models"
	"github.com/ecom-labs/product-api/internal/repo"
	"github.com/ecom-labs/product-api/internal/service"
	"github.com/ecom-labs/product-api/internal/transport"
)

var (
	testSecret = []byte("test-secret")
	dbSeq      int64
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	DB   *gorm.DB
	Deps *Deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:httpserver_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	deps := &Deps{
		CatalogHandler: &CatalogHTTP{
			Svc: &service.CatalogService{Repo: &repo.GormRepo{DB: db}},
		},
		AuthHandler: &AuthHTTP{
			Issuer: &auth.Issuer{
				Secret:        testSecret,
				AdminUsername: "admin",
				AdminPassword: "admin123",
			},
			IDP: &auth.IDPClient{},
		},
		Verifier:   &auth.LocalVerifier{Secret: testSecret},
		LocalLogin: true,
	}

	e := echo.New()
	Register(e, deps)

	return &testEnv{T: t, E: e, DB: db, Deps: deps}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(username, password string) string {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/auth/login", transport.LoginRequest{
		Username: username,
		Password: password,
	}, "")
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp transport.LoginResponse
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

func (env *testEnv) loginAdmin() string {
	return env.login("admin", "admin123")
}

func (env *testEnv) loginUser() string {
	return env.login("user", "user123")
}

func testProduct(id string) transport.ProductRequest {
	return transport.ProductRequest{
		ID:         id,
		Name:       "Steel Chair",
		Price:      decimal.RequireFromString("45.00"),
		Department: "Electronics",
	}
}
