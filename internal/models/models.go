package models

import (
	"github.com/shopspring/decimal"
)

// Product is the single persisted entity. ID is caller-supplied and immutable
// once created; it is the identity used for lookup, replace and delete.
// Price is a decimal so currency values never pick up binary floating point
// rounding drift.
type Product struct {
	ID         string          `gorm:"primaryKey"         json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Department string          `gorm:"index"              json:"department"`
}
