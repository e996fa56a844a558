package services

import (
	"errors"
	"fmt"

	"gostore/internal/models"
	"gostore/internal/repositories"
)

// ProductService handles business logic related to products. It also acts as
// the product reference resolver for the cart engine: Resolve turns a product
// ID into a point-in-time price/stock snapshot.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
		}
		return nil, err
	}
	return product, nil
}

// Resolve validates that a product exists and captures its current price and
// stock. The snapshot is taken at call time and never cached across a
// mutation, so stock checks always run against live catalog state.
func (s *ProductService) Resolve(productID string) (*models.ProductSnapshot, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrProductNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	snapshot := product.Snapshot()
	return &snapshot, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %s: %w", product.ID, ErrProductNotFound)
		}
		return err
	}
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrProductNotFound)
		}
		return err
	}
	return nil
}

// ReplaceCatalog wipes the catalog and loads the given products. Used by the
// seed operation for initial setup.
func (s *ProductService) ReplaceCatalog(products []models.Product) error {
	if err := s.repo.DeleteAll(); err != nil {
		return fmt.Errorf("failed to wipe catalog: %w", err)
	}
	for i := range products {
		if err := s.repo.Create(&products[i]); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].Name, err)
		}
	}
	return nil
}
