package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrDuplicateID = errors.New("product id already exists")
)

// GormRepo owns the product collection. Mutations run inside database
// transactions, so a failed insert or replace leaves the prior state
// untouched and readers never observe a half-applied write. The paginated
// listing reads its count and its page from a single transaction as well.
type GormRepo struct {
	DB *gorm.DB
}
