package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecom-labs/product-api/internal/events"
	"github.com/ecom-labs/product-api/internal/logging"
	"github.com/ecom-labs/product-api/internal/models"
	"github.com/ecom-labs/product-api/internal/repo"
	"github.com/ecom-labs/product-api/internal/service"
	"github.com/ecom-labs/product-api/internal/transport"
)

const totalCountHeader = "x-total-count"

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *events.Producer
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *CatalogHTTP) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, event["productID"].(string), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	department := c.QueryParam("department")
	limit := parseIntDefault(c.QueryParam("limit"), service.DefaultLimit)
	offset := parseIntDefault(c.QueryParam("offset"), 0)

	total, items, err := h.Svc.QueryProducts(ctx, department, limit, offset)
	if err != nil {
		l.Error("get_products_error", "status", 500, "reason", "cannot query products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot query products")
	}

	// total counts the filtered set before pagination, so clients can build
	// pagination controls without a second query.
	c.Response().Header().Set(totalCountHeader, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	product, err := h.Svc.GetProduct(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product with this id does not exist")
			return echo.NewHTTPError(http.StatusNotFound, "product with this id does not exist")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod := models.Product{
		ID:         req.ID,
		Name:       req.Name,
		Price:      req.Price,
		Department: req.Department,
	}

	created, err := h.Svc.CreateProduct(ctx, &prod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		case errors.Is(err, repo.ErrDuplicateID):
			l.Warn("product_create_error", "status", 409, "reason", "product id already exists")
			return echo.NewHTTPError(http.StatusConflict, "product id already exists")
		default:
			l.Error("product_create_error", "status", 500, "reason", "cannot add product to db", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to db")
		}
	}

	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": created.ID,
		"name":      created.Name,
	})

	l.Info("create_product_success", "product_id", created.ID)
	c.Response().Header().Set(echo.HeaderLocation, "/products/"+created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) ReplaceProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.replace_product")

	id := c.Param("id")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_replace_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod := models.Product{
		ID:         req.ID,
		Name:       req.Name,
		Price:      req.Price,
		Department: req.Department,
	}

	replaced, err := h.Svc.ReplaceProduct(ctx, id, &prod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIDMismatch):
			l.Warn("product_replace_error", "status", 400, "reason", "path id does not match body id")
			return echo.NewHTTPError(http.StatusBadRequest, "path id does not match body id")
		case errors.Is(err, service.ErrValidation):
			l.Warn("product_replace_error", "status", 400, "reason", "invalid body", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
		case errors.Is(err, repo.ErrNotFound):
			l.Warn("product_replace_error", "status", 404, "reason", "cannot find product in db")
			return echo.NewHTTPError(http.StatusNotFound, "cannot find product in db")
		default:
			l.Error("product_replace_error", "status", 500, "reason", "cannot update product", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": replaced.ID,
		"name":      replaced.Name,
	})

	l.Info("replace_product_success", "product_id", replaced.ID)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id := c.Param("id")
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("product_delete_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("product_delete_error", "status", 500, "reason", "cannot delete product from db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product from db")
	}

	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}
