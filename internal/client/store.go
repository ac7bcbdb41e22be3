package client

import (
	"context"
	"log/slog"
	"sync"
)

// Store serializes all state transitions through a mutex. Cart mutations are
// synchronous and strictly ordered by dispatch order; refreshes are
// asynchronous and the most recent response to settle wins.
type Store struct {
	mu     sync.Mutex
	state  State
	api    *APIClient
	logger *slog.Logger
}

// NewStore creates a store with an empty mirror and cart.
func NewStore(api *APIClient, logger *slog.Logger) *Store {
	return &Store{
		api:    api,
		logger: logger,
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action through the reducer.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
}

// Refresh replaces the mirror from the API. Concurrent refreshes are not
// coalesced or cancelled; responses apply in settle order. A failed fetch
// leaves the previous mirror intact and surfaces a retryable error.
func (s *Store) Refresh(ctx context.Context, category string) error {
	s.Dispatch(Action{Type: RefreshStart, Category: category})

	products, err := s.api.FetchProducts(ctx, category)
	if err != nil {
		s.logger.WarnContext(ctx, "catalog refresh failed",
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		s.Dispatch(Action{Type: RefreshFailure, Err: err})
		return err
	}

	s.Dispatch(Action{Type: RefreshSuccess, Products: products})
	return nil
}

// AddToCart optimistically moves one unit of the product into the cart.
func (s *Store) AddToCart(productID int64) {
	s.Dispatch(Action{Type: AddToCart, ProductID: productID})
}

// RemoveFromCart deletes the product's line item from the cart.
func (s *Store) RemoveFromCart(productID int64) {
	s.Dispatch(Action{Type: RemoveFromCart, ProductID: productID})
}

// CartTotal recomputes the cart total from the current state.
func (s *Store) CartTotal() float64 {
	return s.State().CartTotal()
}
