package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/craftlane/storefront/internal/domain"
	pkgkafka "github.com/craftlane/storefront/pkg/kafka"
)

// TopicProductCreated is where new catalog entries are announced.
var TopicProductCreated = pkgkafka.Topic("product", "created")

// Aggregate type constant.
const AggregateTypeProduct = "product"

// Source identifier for events originating from the catalog API.
const SourceCatalogAPI = "catalog-api"

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
	InStock  bool    `json:"inStock"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog API.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
		Category: product.Category,
		InStock:  product.InStock,
	}

	id := strconv.FormatInt(product.ID, 10)
	event, err := pkgkafka.NewEvent(TopicProductCreated, id, AggregateTypeProduct, SourceCatalogAPI, data)
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published product.created event",
		slog.Int64("product_id", product.ID),
		slog.String("category", product.Category),
	)

	return nil
}
