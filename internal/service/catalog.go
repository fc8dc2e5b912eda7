package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ecom-labs/product-api/internal/models"
	"github.com/ecom-labs/product-api/internal/repo"
)

var (
	ErrIDMismatch = errors.New("path id does not match body id")
	ErrValidation = errors.New("invalid product")
)

const DefaultLimit = 20

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) QueryProducts(ctx context.Context, department string, limit, offset int) (int64, []models.Product, error) {
	return s.Repo.Query(ctx, strings.TrimSpace(department), limit, offset)
}

func (s *CatalogService) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if strings.TrimSpace(prod.ID) == "" {
		return nil, ErrValidation
	}
	if prod.Price.LessThan(decimal.Zero) {
		return nil, ErrValidation
	}
	return s.Repo.CreateProduct(ctx, prod)
}

// ReplaceProduct overwrites all fields of the record at pathID. The body must
// carry the same id as the path, compared case-insensitively.
func (s *CatalogService) ReplaceProduct(ctx context.Context, pathID string, prod *models.Product) (*models.Product, error) {
	if !strings.EqualFold(pathID, prod.ID) {
		return nil, ErrIDMismatch
	}
	if prod.Price.LessThan(decimal.Zero) {
		return nil, ErrValidation
	}
	return s.Repo.ReplaceProduct(ctx, pathID, prod)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.Repo.DeleteProduct(ctx, id)
}
