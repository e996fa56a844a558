package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gostore/internal/models"

	"gorm.io/gorm"
)

// CartRecord is the persisted form of a cart: one row per user holding the
// full set of lines as a JSON document plus a version counter. Writes always
// replace the whole document, so a concurrent reader never observes a
// partially updated cart.
type CartRecord struct {
	UserID    string `gorm:"primaryKey;type:varchar(36)"`
	Lines     string `gorm:"type:text"`
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name.
func (CartRecord) TableName() string {
	return "carts"
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Get loads the cart document for a user. Absence of a row is a defined
// state: the user simply has an empty cart at version 0.
func (r *GORMCartRepository) Get(userID string) (*models.Cart, error) {
	var record CartRecord
	if err := r.db.First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to load cart for user %s: %w", userID, err)
	}

	var lines []models.CartLine
	if record.Lines != "" {
		if err := json.Unmarshal([]byte(record.Lines), &lines); err != nil {
			return nil, fmt.Errorf("failed to decode cart lines for user %s: %w", userID, err)
		}
	}

	return &models.Cart{
		UserID:  userID,
		Lines:   lines,
		Version: record.Version,
	}, nil
}

// Save replaces the user's cart document, guarded by a compare-and-swap on
// the version column. The losing writer of a race gets ErrVersionMismatch.
func (r *GORMCartRepository) Save(cart *models.Cart) error {
	data, err := json.Marshal(cart.Lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart lines for user %s: %w", cart.UserID, err)
	}

	newVersion := cart.Version + 1

	if cart.Version == 0 {
		record := CartRecord{
			UserID:  cart.UserID,
			Lines:   string(data),
			Version: newVersion,
		}
		if err := r.db.Create(&record).Error; err != nil {
			// A row appearing underneath us means another writer won the
			// first-save race.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrVersionMismatch)
			}
			return fmt.Errorf("failed to create cart for user %s: %w", cart.UserID, err)
		}
		cart.Version = newVersion
		return nil
	}

	res := r.db.Model(&CartRecord{}).
		Where("user_id = ? AND version = ?", cart.UserID, cart.Version).
		Updates(map[string]interface{}{
			"lines":   string(data),
			"version": newVersion,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to save cart for user %s: %w", cart.UserID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrVersionMismatch)
	}

	cart.Version = newVersion
	return nil
}

// Clear drops all lines from the user's cart. Emptying a cart converges to
// the same state regardless of racing writers, so no version check is needed.
// Clearing an absent cart is a no-op.
func (r *GORMCartRepository) Clear(userID string) error {
	res := r.db.Model(&CartRecord{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"lines":   "[]",
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, res.Error)
	}
	return nil
}
