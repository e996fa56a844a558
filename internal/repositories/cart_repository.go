package repositories

import "gostore/internal/models"

// CartRepository defines the interface for cart document access. The cart is
// stored as one whole document per user: Save always replaces the full
// document, guarded by a version check, and never patches individual lines.
type CartRepository interface {
	// Get loads the cart for a user. A user with no persisted cart gets an
	// empty cart at version 0, not an error.
	Get(userID string) (*models.Cart, error)
	// Save replaces the user's cart document. The cart's Version must match
	// the persisted version; on success the version is bumped in place.
	// A stale version fails with ErrVersionMismatch.
	Save(cart *models.Cart) error
	// Clear drops all lines from the user's cart. Idempotent.
	Clear(userID string) error
}
