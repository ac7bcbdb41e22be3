package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/craftlane/storefront/internal/domain"
	"github.com/craftlane/storefront/internal/repository"
	"github.com/craftlane/storefront/pkg/database"
	apperrors "github.com/craftlane/storefront/pkg/errors"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, description, price, quantity, category, image_url, in_stock, variants, created_at, updated_at`

// Create inserts a new product and fills in the server-assigned fields.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	variants, err := p.Variants.StoreValue()
	if err != nil {
		return fmt.Errorf("serialize variants: %w", err)
	}

	query := `
		INSERT INTO products (name, description, price, quantity, category, image_url, in_stock, variants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	ctx, end := database.TraceQuery(ctx, "CreateProduct", query)
	err = r.pool.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.Price,
		p.Quantity,
		p.Category,
		p.ImageURL,
		p.InStock,
		variants,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	end(err)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetProduct", query)
	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	end(err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", fmt.Sprintf("%d", id))
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return p, nil
}

// List returns products, optionally restricted to an exact category match.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products`

	var args []any
	if filter.Category != nil {
		query += ` WHERE category = $1`
		args = append(args, *filter.Category)
	}
	query += ` ORDER BY id`

	ctx, end := database.TraceQuery(ctx, "ListProducts", query)
	rows, err := r.pool.Query(ctx, query, args...)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	// Always a non-nil slice so an empty store serializes as [].
	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// scanProduct reads one product row, rebuilding the variants union from the
// persisted serialized form.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p        domain.Product
		variants *string
	)

	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Quantity,
		&p.Category,
		&p.ImageURL,
		&p.InStock,
		&variants,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Variants = domain.VariantsFromStore(variants)
	return &p, nil
}
