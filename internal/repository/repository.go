package repository

import (
	"context"

	"github.com/Yana3030-web/stroymaster-website/internal/model"
)

// ProductRepository defines the catalogue read operations. The catalogue is
// maintained externally; this system never writes to it.
type ProductRepository interface {
	// ActiveProducts retrieves all active products, newest first.
	ActiveProducts(ctx context.Context) ([]model.Product, error)

	// ActiveProductsByCategory retrieves active products whose category
	// exactly matches the given label, newest first.
	ActiveProductsByCategory(ctx context.Context, category string) ([]model.Product, error)

	// SearchActiveProducts retrieves active products whose name,
	// description or category contains the term, case-insensitively.
	SearchActiveProducts(ctx context.Context, term string) ([]model.Product, error)

	// ActiveCategories retrieves the distinct category labels among
	// active products.
	ActiveCategories(ctx context.Context) ([]string, error)

	// ProductByID retrieves a single active product, or nil when absent.
	ProductByID(ctx context.Context, id int64) (*model.Product, error)
}
