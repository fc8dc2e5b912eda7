package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecom-labs/product-api/internal/auth"
	"github.com/ecom-labs/product-api/internal/logging"
	"github.com/ecom-labs/product-api/internal/transport"
)

type AuthHTTP struct {
	Issuer *auth.Issuer
	IDP    *auth.IDPClient
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	token, err := h.Issuer.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials", "username", req.Username)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}

	l.Info("login_success", "username", req.Username)
	return c.JSON(http.StatusOK, transport.LoginResponse{Token: token})
}

// Token proxies a client-credentials grant to the hosted identity provider.
// The provider's status and body are forwarded to the caller unmodified.
func (h *AuthHTTP) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.token")

	if !h.IDP.Configured() {
		l.Warn("token_exchange_failed", "status", 400, "reason", "identity provider configuration is missing")
		return echo.NewHTTPError(http.StatusBadRequest, "identity provider configuration is missing")
	}

	resp, err := h.IDP.ClientCredentials(ctx)
	if err != nil {
		l.Error("token_exchange_failed", "status", 502, "reason", "identity provider unreachable", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unreachable")
	}

	return passthrough(c, resp)
}

// CodeExchange trades an authorization code obtained by the front end for
// tokens at the identity provider.
func (h *AuthHTTP) CodeExchange(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.code_exchange")

	if !h.IDP.Configured() {
		l.Warn("code_exchange_failed", "status", 400, "reason", "identity provider configuration is missing")
		return echo.NewHTTPError(http.StatusBadRequest, "identity provider configuration is missing")
	}

	var req transport.CodeExchangeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("code_exchange_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	resp, err := h.IDP.ExchangeCode(ctx, req.Code)
	if err != nil {
		l.Error("code_exchange_failed", "status", 502, "reason", "identity provider unreachable", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "identity provider unreachable")
	}

	return passthrough(c, resp)
}

func passthrough(c echo.Context, resp *auth.TokenResponse) error {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Blob(resp.Status, contentType, resp.Body)
}
