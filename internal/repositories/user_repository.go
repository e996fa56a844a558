package repositories

import "gostore/internal/models"

// UserRepository defines the interface for user data access.
// Lookups for a missing user wrap ErrNotFound.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
