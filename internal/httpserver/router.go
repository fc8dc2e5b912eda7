package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecom-labs/product-api/internal/auth"
	"github.com/ecom-labs/product-api/internal/middleware"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	AuthHandler    *AuthHTTP

	Verifier auth.TokenVerifier

	// LocalLogin registers POST /auth/login. It is off in delegated mode,
	// where the identity provider owns the login flow.
	LocalLogin bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authGroup := e.Group("/auth")
	if d.LocalLogin {
		authGroup.POST("/login", d.AuthHandler.Login)
	}
	authGroup.POST("/token", d.AuthHandler.Token)
	authGroup.POST("/code-exchange", d.AuthHandler.CodeExchange)

	products := e.Group("/products", middleware.RequireUser(d.Verifier))
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct)
	products.PUT("/:id", d.CatalogHandler.ReplaceProduct)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, middleware.RequireRole(auth.RoleAdmin))
}
