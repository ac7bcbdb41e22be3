// Package client implements the storefront's browser-side core as a Go
// library: a catalog API client, a local product mirror, and an optimistic
// client-side cart. The mirror is a possibly-stale read-only copy of the
// store; cart bookkeeping never round-trips to the server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/craftlane/storefront/internal/domain"
	"github.com/craftlane/storefront/pkg/httpclient"
)

// APIClient talks to the catalog API with retries and a circuit breaker.
type APIClient struct {
	baseURL     string
	uploadsBase string
	http        *httpclient.CircuitBreakerClient
}

// Config holds the API client configuration.
type Config struct {
	// BaseURL is the catalog API root, e.g. "http://localhost:4000".
	BaseURL string
	// UploadsBase resolves relative image references. Defaults to BaseURL.
	UploadsBase string
	// HTTP overrides the transport defaults when non-nil.
	HTTP *httpclient.Config
}

// NewAPIClient creates a catalog API client.
func NewAPIClient(cfg Config, logger *slog.Logger) *APIClient {
	uploadsBase := cfg.UploadsBase
	if uploadsBase == "" {
		uploadsBase = cfg.BaseURL
	}

	httpCfg := httpclient.DefaultConfig()
	if cfg.HTTP != nil {
		httpCfg = *cfg.HTTP
	}

	base := httpclient.New(httpCfg)
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("catalog-api"), logger)

	return &APIClient{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		uploadsBase: strings.TrimRight(uploadsBase, "/"),
		http:        cb,
	}
}

// productPayload shadows the quantity field so a missing value is
// distinguishable from an explicit zero.
type productPayload struct {
	domain.Product
	Quantity *int `json:"quantity"`
}

// CreateProductRequest is the JSON body for creating a product.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Quantity    *int            `json:"quantity,omitempty"`
	Category    string          `json:"category"`
	Image       *string         `json:"image,omitempty"`
	InStock     *bool           `json:"inStock,omitempty"`
	Variants    domain.Variants `json:"variants"`
}

// FetchProducts lists products, optionally filtered by exact category, and
// normalizes each entry for display.
func (c *APIClient) FetchProducts(ctx context.Context, category string) ([]domain.Product, error) {
	endpoint := c.baseURL + "/products"
	if category != "" {
		endpoint += "?category=" + url.QueryEscape(category)
	}

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog-api")
	}
	defer func() { _ = resp.Body.Close() }()

	var payloads []productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]domain.Product, len(payloads))
	for i, p := range payloads {
		products[i] = c.normalize(p)
	}
	return products, nil
}

// FetchProduct retrieves and normalizes a single product.
func (c *APIClient) FetchProduct(ctx context.Context, id int64) (*domain.Product, error) {
	resp, err := c.http.Get(ctx, fmt.Sprintf("%s/products/%d", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("fetch product %d: %w", id, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog-api")
	}
	defer func() { _ = resp.Body.Close() }()

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}

	product := c.normalize(payload)
	return &product, nil
}

// CreateProduct submits a new product and returns the stored record.
func (c *APIClient) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode product: %w", err)
	}

	resp, err := c.http.Post(ctx, c.baseURL+"/products", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "catalog-api")
	}
	defer func() { _ = resp.Body.Close() }()

	var payload productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode created product: %w", err)
	}

	product := c.normalize(payload)
	return &product, nil
}

// normalize applies the display defaults: a missing quantity becomes 1, the
// stock flag is recomputed from quantity, and the image reference is resolved
// to a display URL.
func (c *APIClient) normalize(p productPayload) domain.Product {
	out := p.Product

	quantity := 1
	if p.Quantity != nil {
		quantity = *p.Quantity
	}
	out.Quantity = quantity
	out.InStock = quantity > 0

	if out.ImageURL != nil {
		resolved := c.ResolveImageURL(*out.ImageURL)
		out.ImageURL = &resolved
	}

	return out
}

// ResolveImageURL turns an image reference into a display URL. Absolute URLs
// pass through; anything else is treated as an upload path.
func (c *APIClient) ResolveImageURL(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	return c.uploadsBase + "/" + strings.TrimLeft(ref, "/")
}
