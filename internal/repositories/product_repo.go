package repositories

import (
	"gostore/internal/models"
)

// ProductRepository defines the interface for product data access.
// Lookups for a missing product wrap ErrNotFound.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DeleteAll wipes the catalog. Used by the seed operation.
	DeleteAll() error
}
