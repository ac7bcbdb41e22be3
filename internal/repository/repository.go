package repository

import (
	"context"

	"github.com/craftlane/storefront/internal/domain"
)

// ProductFilter defines filter criteria for listing products.
type ProductFilter struct {
	// Category restricts the listing to an exact, case-sensitive match.
	Category *string
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store, filling in the
	// server-assigned id and timestamps.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List returns products matching the given filter.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}
