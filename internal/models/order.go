package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

type CustomerInfo struct {
	Name  string `gorm:"size:120;not null;default:''" json:"name"`
	Email string `gorm:"size:255;not null;default:''" json:"email"`
	Phone string `gorm:"size:30;not null;default:''"  json:"phone"`
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"                               json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"                           json:"user_id"`
	Customer        CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_"                  json:"customer"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"     json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"                        json:"total_amount"`
	ShippingAddress Address         `gorm:"embedded;embeddedPrefix:shipping_"                  json:"shipping_address"`
	PaymentMethod   string          `gorm:"size:30;not null;default:'card'"                    json:"payment_method"`
	PaymentStatus   string          `gorm:"size:20;not null;default:'pending'"                 json:"payment_status"`
	OrderStatus     string          `gorm:"size:20;not null;default:'pending';index"           json:"order_status"`
	CreatedAt       time.Time       `gorm:"index"                                              json:"created_at"`
	UpdatedAt       time.Time       `                                                          json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a snapshot of the product at purchase time.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"          json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"      json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"      json:"product_id"`
	Name      string          `gorm:"size:200;not null"             json:"name"`
	Size      string          `gorm:"size:50;not null;default:''"   json:"size"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"   json:"price"`
	Quantity  int             `gorm:"not null;check:quantity > 0"   json:"quantity"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
