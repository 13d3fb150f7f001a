package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is owned by exactly one of UserID or SessionID.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"                               json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex"                              json:"user_id,omitempty"`
	SessionID *string    `gorm:"size:128;uniqueIndex"                               json:"session_id,omitempty"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"      json:"items"`
	CreatedAt time.Time  `                                                          json:"created_at"`
	UpdatedAt time.Time  `                                                          json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                                  json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"       json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"       json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"      json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:1;check:quantity > 0"                 json:"quantity"`
	CreatedAt time.Time `                                                             json:"created_at"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}
