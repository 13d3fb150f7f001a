package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomStock is the stock given to products created for bespoke sizes.
const CustomStock = 9999

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"                    json:"id"`
	Name        string          `gorm:"size:200;not null;index"                 json:"name"`
	Description string          `gorm:"type:text;not null;default:''"           json:"description"`
	Size        string          `gorm:"size:50;not null;default:'';index"       json:"size"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"             json:"price"`
	Image       string          `gorm:"size:500;not null;default:''"            json:"image"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"     json:"stock"`
	Popular     bool            `gorm:"not null;default:false;index"            json:"popular"`
	Features    []string        `gorm:"type:text;serializer:json"               json:"features"`
	CreatedAt   time.Time       `gorm:"index"                                   json:"created_at"`
	UpdatedAt   time.Time       `                                               json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}
