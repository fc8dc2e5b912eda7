package seed

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ecom-labs/product-api/internal/models"
)

var (
	adjectives  = []string{"Small", "Ergonomic", "Rustic", "Smart", "Sleek"}
	materials   = []string{"Steel", "Wooden", "Concrete", "Plastic", "Granite", "Rubber"}
	nouns       = []string{"Chair", "Car", "Computer", "Pants", "Shoes"}
	departments = []string{"Books", "Movies", "Music", "Games", "Electronics"}
)

// Products generates n sample records with zero-padded sequential ids.
func Products(n int) []models.Product {
	items := make([]models.Product, 0, n)
	for i := 0; i < n; i++ {
		cents := int64(rand.Intn(8000) + 1000)
		items = append(items, models.Product{
			ID:         fmt.Sprintf("%03d", i),
			Name:       fmt.Sprintf("%s %s %s", pick(adjectives), pick(materials), pick(nouns)),
			Price:      decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)),
			Department: pick(departments),
		})
	}
	return items
}

// Ensure fills the catalog with sample data, but only when it is empty.
func Ensure(db *gorm.DB, n int) error {
	if n <= 0 {
		return nil
	}
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.CreateInBatches(Products(n), 200).Error
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}
