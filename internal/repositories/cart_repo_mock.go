package repositories

import (
	"fmt"
	"sync"

	"gostore/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository with
// the same versioning semantics as the GORM implementation.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// Get returns the user's cart, or an empty cart at version 0 if none exists.
func (r *MockCartRepository) Get(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID}, nil
	}

	cart := models.Cart{
		UserID:  userID,
		Lines:   append([]models.CartLine(nil), stored.Lines...),
		Version: stored.Version,
	}
	return &cart, nil
}

// Save replaces the stored cart if the version matches the stored one.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[cart.UserID]
	current := int64(0)
	if ok {
		current = stored.Version
	}
	if cart.Version != current {
		return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrVersionMismatch)
	}

	cart.Version = current + 1
	r.carts[cart.UserID] = models.Cart{
		UserID:  cart.UserID,
		Lines:   append([]models.CartLine(nil), cart.Lines...),
		Version: cart.Version,
	}
	return nil
}

// Clear empties the user's cart. Clearing an absent cart is a no-op.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[userID]
	if !ok {
		return nil
	}
	stored.Lines = nil
	stored.Version++
	r.carts[userID] = stored
	return nil
}
