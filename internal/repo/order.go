package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

// PlaceOrder reserves stock for every line of order, fills the price
// snapshots and total, inserts the order and empties the user's cart, all in
// one transaction. order.Items must carry ProductID and Quantity. Any
// failure leaves stock untouched.
func (r *GormRepo) PlaceOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero

		for i := range order.Items {
			line := &order.Items[i]

			var product models.Product
			err := tx.Where("id = ?", line.ProductID).Limit(1).Find(&product).Error
			if err != nil {
				return err
			}
			if product.ID == uuid.Nil {
				return &MissingProductError{ProductID: line.ProductID}
			}

			stockErr := &StockError{
				ProductID: product.ID,
				Name:      product.Name,
				Requested: line.Quantity,
				Available: product.Stock,
			}
			if line.Quantity > product.Stock {
				return stockErr
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return stockErr
			}

			line.Name = product.Name
			line.Size = product.Size
			line.Price = product.Price
			total = total.Add(line.LineTotal())
		}

		order.TotalAmount = total
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		userCarts := tx.Model(&models.Cart{}).Select("id").Where("user_id = ?", order.UserID)
		return tx.Where("cart_id IN (?)", userCarts).Delete(&models.CartItem{}).Error
	})
}

// CancelOrder moves a pending order owned by userID to cancelled and returns
// every line's quantity to stock. The status guard makes the restock happen
// at most once.
func (r *GormRepo) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND user_id = ? AND order_status = ?", orderID, userID, models.OrderStatusPending).
			Update("order_status", models.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.Order{}).Where("id = ? AND user_id = ?", orderID, userID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrOrderNotPending
		}

		if err := tx.Preload("Items").Where("id = ?", orderID).First(&order).Error; err != nil {
			return err
		}

		for _, it := range order.Items {
			// The product may have been deleted since; its snapshot stays on the order.
			err := tx.Model(&models.Product{}).
				Where("id = ?", it.ProductID).
				Update("stock", gorm.Expr("stock + ?", it.Quantity)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

type OrderFilter struct {
	UserID *uuid.UUID
	Status string
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("order_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	err := q.Preload("Items").Order("created_at DESC").Order("id").Offset(offset).Limit(limit).Find(&orders).Error
	if err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

type OrderStatusUpdate struct {
	OrderStatus   string
	PaymentStatus string
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, u OrderStatusUpdate) (*models.Order, error) {
	updates := map[string]any{}
	if u.OrderStatus != "" {
		updates["order_status"] = u.OrderStatus
	}
	if u.PaymentStatus != "" {
		updates["payment_status"] = u.PaymentStatus
	}

	db := r.DB.WithContext(ctx)
	if len(updates) > 0 {
		q := db.Model(&models.Order{}).Where("id = ?", id)
		// A cancelled order has been restocked; reopening it would let a
		// second cancellation restock again.
		reopening := u.OrderStatus != "" && u.OrderStatus != models.OrderStatusCancelled
		if reopening {
			q = q.Where("order_status <> ?", models.OrderStatusCancelled)
		}
		res := q.Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			if reopening {
				if _, err := r.GetOrder(ctx, id); err == nil {
					return nil, ErrOrderCancelled
				}
			}
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetOrder(ctx, id)
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
