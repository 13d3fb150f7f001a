package repo

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotPending   = errors.New("order is not pending")
	ErrOrderCancelled    = errors.New("order is cancelled")
)

// StockError reports the first line of a checkout that could not be reserved.
type StockError struct {
	ProductID uuid.UUID
	Name      string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Name)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// MissingProductError reports a checkout line whose product does not exist.
type MissingProductError struct {
	ProductID uuid.UUID
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *MissingProductError) Unwrap() error { return gorm.ErrRecordNotFound }

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.User{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
}
