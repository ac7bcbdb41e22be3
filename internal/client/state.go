package client

import (
	"github.com/craftlane/storefront/internal/domain"
)

// CartItem is a client-local line item. It references a product by identity
// only and snapshots name, price, image, and variants at add time; later
// catalog changes do not retroactively update it.
type CartItem struct {
	ProductID int64            `json:"productId"`
	Name      string           `json:"name"`
	Price     float64          `json:"price"`
	Quantity  int              `json:"quantity"`
	ImageURL  *string          `json:"imageUrl"`
	Variants  []domain.Variant `json:"variants,omitempty"`
}

// ActionType keys the reducer.
type ActionType string

const (
	RefreshStart   ActionType = "REFRESH_START"
	RefreshSuccess ActionType = "REFRESH_SUCCESS"
	RefreshFailure ActionType = "REFRESH_FAILURE"
	AddToCart      ActionType = "ADD_TO_CART"
	RemoveFromCart ActionType = "REMOVE_FROM_CART"
)

// Action is a single state transition input.
type Action struct {
	Type ActionType

	// Category accompanies REFRESH_START.
	Category string
	// Products accompanies REFRESH_SUCCESS (already normalized).
	Products []domain.Product
	// Err accompanies REFRESH_FAILURE.
	Err error
	// ProductID accompanies ADD_TO_CART and REMOVE_FROM_CART.
	ProductID int64
}

// State holds the client's view: the product mirror, the cart, the active
// category filter, and the refresh status.
type State struct {
	Products []domain.Product
	Cart     []CartItem
	Category string
	Loading  bool
	// Err is a retryable, user-dismissable message; empty means no error.
	Err string
}

// CartTotal sums price times quantity over the cart. It is recomputed on
// every call, never cached.
func (s State) CartTotal() float64 {
	var total float64
	for _, item := range s.Cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// cartIndex returns the position of the line item for productID, or -1.
func (s State) cartIndex(productID int64) int {
	for i, item := range s.Cart {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// productIndex returns the position of productID in the mirror, or -1.
func (s State) productIndex(productID int64) int {
	for i, p := range s.Products {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

// Reduce applies an action to a state and returns the next state. It is pure:
// the input state is never mutated, and unknown actions return it unchanged.
func Reduce(s State, a Action) State {
	switch a.Type {
	case RefreshStart:
		next := s
		next.Loading = true
		next.Err = ""
		next.Category = a.Category
		return next

	case RefreshSuccess:
		// Wholesale replacement: optimistic decrements applied since the
		// last refresh are discarded, not replayed.
		next := s
		next.Loading = false
		next.Err = ""
		next.Products = append([]domain.Product(nil), a.Products...)
		return next

	case RefreshFailure:
		// The previous mirror stays intact.
		next := s
		next.Loading = false
		if a.Err != nil {
			next.Err = a.Err.Error()
		} else {
			next.Err = "failed to load products"
		}
		return next

	case AddToCart:
		return reduceAddToCart(s, a.ProductID)

	case RemoveFromCart:
		return reduceRemoveFromCart(s, a.ProductID)

	default:
		return s
	}
}

// reduceAddToCart moves one unit from the mirrored stock into the cart.
// Out-of-stock products make the action a no-op.
func reduceAddToCart(s State, productID int64) State {
	pi := s.productIndex(productID)
	if pi < 0 || !s.Products[pi].HasStock() {
		return s
	}

	next := s

	// Optimistic decrement against the mirror only; never written back.
	next.Products = append([]domain.Product(nil), s.Products...)
	next.Products[pi].Quantity--
	next.Products[pi].InStock = next.Products[pi].Quantity > 0

	next.Cart = append([]CartItem(nil), s.Cart...)
	if ci := s.cartIndex(productID); ci >= 0 {
		next.Cart[ci].Quantity++
		return next
	}

	p := s.Products[pi]
	next.Cart = append(next.Cart, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		ImageURL:  p.ImageURL,
		Variants:  p.Variants.List(),
	})
	return next
}

// reduceRemoveFromCart deletes the whole line item but restores exactly one
// unit to the mirror and forces the stock flag on. This does not symmetrically
// reverse multi-unit adds; the asymmetry is long-standing observed behavior
// and is kept rather than corrected.
func reduceRemoveFromCart(s State, productID int64) State {
	ci := s.cartIndex(productID)
	if ci < 0 {
		return s
	}

	next := s
	next.Cart = append(append([]CartItem(nil), s.Cart[:ci]...), s.Cart[ci+1:]...)

	if pi := s.productIndex(productID); pi >= 0 {
		next.Products = append([]domain.Product(nil), s.Products...)
		next.Products[pi].Quantity++
		next.Products[pi].InStock = true
	}

	return next
}
