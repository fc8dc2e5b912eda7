package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ecom-labs/product-api/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Query filters by department (case-insensitive, byte-wise fold so the result
// does not depend on the process locale), counts the filtered set before
// pagination, and pages over it in ascending id order. An offset past the end
// or a non-positive limit yields an empty page, not an error. Both reads run
// in one transaction so the total and the page come from the same snapshot.
func (r *GormRepo) Query(ctx context.Context, department string, limit, offset int) (int64, []models.Product, error) {
	var total int64
	items := []models.Product{}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := filtered(tx, department).Count(&total).Error; err != nil {
			return err
		}

		if limit <= 0 {
			return nil
		}
		if offset < 0 {
			offset = 0
		}

		return filtered(tx, department).
			Order("id ASC").
			Offset(offset).
			Limit(limit).
			Find(&items).Error
	})
	if err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func filtered(db *gorm.DB, department string) *gorm.DB {
	q := db.Model(&models.Product{})
	if department != "" {
		q = q.Where("LOWER(department) = LOWER(?)", department)
	}
	return q
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.Where("id = ?", prod.ID).First(&existing).Error
		if err == nil {
			return ErrDuplicateID
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// a concurrent create may still win between the check and the
		// insert; the unique violation comes back as ErrDuplicatedKey
		if err := tx.Create(prod).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateID
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prod, nil
}

// ReplaceProduct overwrites every field of the record identified by id in a
// single step. The stored id is kept as the record identity.
func (r *GormRepo) ReplaceProduct(ctx context.Context, id string, prod *models.Product) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		prod.ID = existing.ID
		return tx.Save(prod).Error
	})
	if err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
