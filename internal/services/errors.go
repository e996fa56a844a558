package services

import "errors"

// Error kinds surfaced by the cart engine. Handlers map these onto HTTP
// status codes with errors.Is; none of them leaves a partial write behind.
var (
	// ErrProductNotFound means the referenced product does not exist in the
	// catalog. No state change is performed.
	ErrProductNotFound = errors.New("product not found")
	// ErrLineNotFound means the cart has no line for the referenced product.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrInvalidQuantity means the requested quantity is zero or negative
	// where a positive quantity is required.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInsufficientStock means the mutation would raise a line's quantity
	// above the product's current stock. The mutation is rejected outright,
	// never clamped.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrConflict means a concurrent mutation won the write race. Retrying
	// the same mutation is safe.
	ErrConflict = errors.New("concurrent cart modification")
	// ErrUpstreamUnavailable means the catalog or cart store failed on I/O.
	// Retryable with backoff by the caller.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
