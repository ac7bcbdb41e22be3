package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/craftlane/storefront/internal/domain"
	"github.com/craftlane/storefront/internal/event"
	"github.com/craftlane/storefront/internal/repository"
	apperrors "github.com/craftlane/storefront/pkg/errors"
	pkgkafka "github.com/craftlane/storefront/pkg/kafka"
)

// --- Mock Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(repo *mockProductRepository) *CatalogService {
	logger := newTestLogger()
	// A producer without a reachable broker fails silently in tests.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	producer := event.NewProducer(kafkaProducer, logger)
	return NewCatalogService(repo, producer, logger)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

// --- CreateProduct ---

func TestCreateProduct_AppliesDefaults(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Quantity == 1 && p.InStock
	})).Return(nil)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:     "Mug",
		Price:    9.99,
		Category: "Kitchen",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, product.Quantity)
	assert.True(t, product.InStock)
	repo.AssertExpectations(t)
}

func TestCreateProduct_ExplicitStockAndQuantity(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:     "Denim Jacket",
		Price:    99.5,
		Quantity: intPtr(3),
		Category: "Apparel",
		InStock:  boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, product.Quantity)
	assert.False(t, product.InStock)
}

func TestCreateProduct_EmptyName(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Price:    5,
		Category: "X",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "Create")
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:     "Mug",
		Price:    -1,
		Category: "Kitchen",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCreateProduct_EmptyCategory(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:  "Mug",
		Price: 9.99,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCreateProduct_NegativeQuantity(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:     "Mug",
		Price:    9.99,
		Quantity: intPtr(-2),
		Category: "Kitchen",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCreateProduct_RelativeImageRejected(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:     "Mug",
		Price:    9.99,
		Category: "Kitchen",
		Image:    strPtr("/uploads/mug.png"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCreateProduct_AbsoluteImageAccepted(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:     "Mug",
		Price:    9.99,
		Category: "Kitchen",
		Image:    strPtr("https://cdn.example.com/mug.png"),
	})

	require.NoError(t, err)
	require.NotNil(t, product.ImageURL)
	assert.Equal(t, "https://cdn.example.com/mug.png", *product.ImageURL)
}

func TestCreateProduct_StorageFault(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:     "Mug",
		Price:    9.99,
		Category: "Kitchen",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create product")
}

func TestCreateProduct_PreservesVariants(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	variants := domain.StructuredVariants([]domain.Variant{{Name: "Size", Options: []string{"S", "M"}}})
	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:     "Classic Tee",
		Price:    19.99,
		Category: "Apparel",
		Variants: variants,
	})

	require.NoError(t, err)
	assert.Equal(t, variants.List(), product.Variants.List())
}

// --- GetProduct ---

func TestGetProduct(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	want := &domain.Product{ID: 42, Name: "Classic Tee"}
	repo.On("GetByID", mock.Anything, int64(42)).Return(want, nil)

	got, err := svc.GetProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	repo.On("GetByID", mock.Anything, int64(999)).Return(nil, apperrors.NotFound("product", "999"))

	_, err := svc.GetProduct(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

// --- ListProducts ---

func TestListProducts(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	want := []domain.Product{{ID: 1, Name: "Classic Tee", Category: "Apparel"}}
	repo.On("List", mock.Anything, repository.ProductFilter{}).Return(want, nil)

	got, err := svc.ListProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	category := "Footwear"
	repo.On("List", mock.Anything, repository.ProductFilter{Category: &category}).
		Return([]domain.Product{}, nil)

	got, err := svc.ListProducts(context.Background(), &category)
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertExpectations(t)
}

func TestListProducts_StorageFault(t *testing.T) {
	repo := new(mockProductRepository)
	svc := newTestService(repo)

	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("broken pipe"))

	_, err := svc.ListProducts(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list products")
}
