package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ImageList is an ordered list of image URLs stored as a JSON text column.
type ImageList []string

// Value implements driver.Valuer so GORM can persist the list.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for reading the JSON column back.
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for image list", value)
	}
	return json.Unmarshal(data, l)
}

// Product represents a product in the store catalog.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=3,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Category    string    `json:"category" validate:"omitempty,max=50"`
	Images      ImageList `json:"images" gorm:"type:text"`
	Stock       int       `json:"stock" validate:"gte=0"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int       `json:"reviews" validate:"gte=0"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ProductSnapshot is a point-in-time view of a product's identity, price and
// stock, captured when a cart is mutated or projected. It is never kept in
// sync with the catalog after capture.
type ProductSnapshot struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Price  float64   `json:"price"`
	Stock  int       `json:"stock"`
	Images ImageList `json:"images,omitempty"`
}

// Snapshot captures the product's current state.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Stock:  p.Stock,
		Images: p.Images,
	}
}
