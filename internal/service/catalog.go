package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/craftlane/storefront/internal/domain"
	"github.com/craftlane/storefront/internal/event"
	"github.com/craftlane/storefront/internal/repository"
	apperrors "github.com/craftlane/storefront/pkg/errors"
)

// CatalogService implements the business logic for catalog operations.
type CatalogService struct {
	repo     repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    *int
	Category    string
	Image       *string
	InStock     *bool
	Variants    domain.Variants
}

// ListProducts returns products, optionally filtered by exact category.
func (s *CatalogService) ListProducts(ctx context.Context, category *string) ([]domain.Product, error) {
	products, err := s.repo.List(ctx, repository.ProductFilter{Category: category})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product by its ID.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// CreateProduct validates the input, applies defaults, persists the product,
// and publishes a product.created event. The event is best-effort and never
// fails the operation.
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if input.Image != nil {
		u, err := url.Parse(*input.Image)
		if err != nil || !u.IsAbs() {
			return nil, apperrors.InvalidInput("image must be an absolute URL")
		}
	}

	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    quantity,
		Category:    input.Category,
		ImageURL:    input.Image,
		InStock:     inStock,
		Variants:    input.Variants,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", strconv.FormatInt(product.ID, 10)),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.String("category", product.Category),
	)

	return product, nil
}
