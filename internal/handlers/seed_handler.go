package handlers

import (
	"log"

	"gostore/internal/models"
	"gostore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SeedHandler exposes the fixture-loading endpoint used for initial setup.
// Seeding wipes the catalog before inserting the sample products.
type SeedHandler struct {
	service *services.ProductService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(service *services.ProductService) *SeedHandler {
	return &SeedHandler{
		service: service,
	}
}

// RegisterRoutes registers the seed route with the Fiber app.
func (h *SeedHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/seed", h.HandleSeed)
}

// HandleSeed replaces the catalog with the sample product set.
func (h *SeedHandler) HandleSeed(c *fiber.Ctx) error {
	if err := h.service.ReplaceCatalog(SampleProducts()); err != nil {
		log.Printf("Error seeding catalog: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not seed database",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Database seeded successfully!",
	})
}

// SampleProducts returns the demo catalog fixtures.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        "Wireless Headphones",
			Description: "Premium wireless headphones with noise cancellation and 30-hour battery life",
			Price:       199.99,
			Category:    "Electronics",
			Images: models.ImageList{
				"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500",
				"https://images.unsplash.com/photo-1484704849700-f032a568e944?w=500",
				"https://images.unsplash.com/photo-1487215078519-e21cc028cb29?w=500",
			},
			Stock:   50,
			Rating:  4.5,
			Reviews: 128,
		},
		{
			Name:        "Smart Watch",
			Description: "Fitness tracking smartwatch with heart rate monitor and GPS",
			Price:       299.99,
			Category:    "Electronics",
			Images: models.ImageList{
				"https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500",
				"https://images.unsplash.com/photo-1546868871-7041f2a55e12?w=500",
				"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=500",
			},
			Stock:   35,
			Rating:  4.7,
			Reviews: 256,
		},
		{
			Name:        "Classic Cotton T-Shirt",
			Description: "Comfortable 100% cotton t-shirt available in multiple colors",
			Price:       29.99,
			Category:    "Clothing",
			Images: models.ImageList{
				"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500",
				"https://images.unsplash.com/photo-1503342217505-b0a15ec3261c?w=500",
			},
			Stock:   100,
			Rating:  4.3,
			Reviews: 89,
		},
		{
			Name:        "Running Shoes",
			Description: "Lightweight running shoes with superior cushioning and breathability",
			Price:       89.99,
			Category:    "Sports",
			Images: models.ImageList{
				"https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=500",
				"https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?w=500",
				"https://images.unsplash.com/photo-1539185441755-769473a23570?w=500",
			},
			Stock:   60,
			Rating:  4.6,
			Reviews: 342,
		},
		{
			Name:        "Laptop Backpack",
			Description: "Durable backpack with padded laptop compartment and USB charging port",
			Price:       49.99,
			Category:    "Other",
			Images: models.ImageList{
				"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500",
				"https://images.unsplash.com/photo-1622560480605-d83c853bc5c3?w=500",
			},
			Stock:   45,
			Rating:  4.4,
			Reviews: 67,
		},
		{
			Name:        "Coffee Maker",
			Description: "Programmable coffee maker with thermal carafe and auto-shutoff",
			Price:       79.99,
			Category:    "Home",
			Images: models.ImageList{
				"https://images.unsplash.com/photo-1517668808822-9ebb02f2a0e6?w=500",
				"https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=500",
			},
			Stock:   30,
			Rating:  4.2,
			Reviews: 154,
		},
	}
}
