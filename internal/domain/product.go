package domain

import (
	"time"
)

// Product represents a catalog item. The store is the sole source of truth
// for price, category, stock quantity, image reference, and variant metadata.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"imageUrl"`
	InStock     bool      `json:"inStock"`
	Variants    Variants  `json:"variants"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasStock reports whether the product can still be added to a cart.
func (p *Product) HasStock() bool {
	return p.InStock && p.Quantity > 0
}
