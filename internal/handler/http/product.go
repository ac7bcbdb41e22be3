package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/craftlane/storefront/internal/domain"
	"github.com/craftlane/storefront/internal/service"
	"github.com/craftlane/storefront/pkg/httputil"
	"github.com/craftlane/storefront/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateProductRequest is the JSON request body for creating a product.
// Price is a pointer so a missing field is distinguishable from zero.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=500"`
	Description string          `json:"description"`
	Price       *float64        `json:"price" validate:"required,gte=0"`
	Quantity    *int            `json:"quantity" validate:"omitempty,gte=0"`
	Category    string          `json:"category" validate:"required"`
	Image       *string         `json:"image" validate:"omitempty,url"`
	InStock     *bool           `json:"inStock"`
	Variants    domain.Variants `json:"variants"`
}

// ListProducts handles GET /products with an optional exact-match category
// filter. The response is always a bare JSON array, never null.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var category *string
	if v := r.URL.Query().Get("category"); v != "" {
		category = &v
	}

	products, err := h.service.ListProducts(r.Context(), category)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorMessage{
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Image:       req.Image,
		InStock:     req.InStock,
		Variants:    req.Variants,
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, product)
}
