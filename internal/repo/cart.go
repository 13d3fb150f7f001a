package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
)

// ResolveCart finds the owner's cart, merging a guest cart into the user's
// when the owner carries both identities. With create set, a missing cart is
// created; otherwise gorm.ErrRecordNotFound is returned.
func (r *GormRepo) ResolveCart(ctx context.Context, owner domain.CartOwner, create bool) (*models.Cart, error) {
	var cartID uuid.UUID

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := r.resolveInTx(tx, owner)
		if err != nil {
			return err
		}
		if cart == nil {
			if !create {
				return gorm.ErrRecordNotFound
			}
			if cart, err = createCart(tx, owner); err != nil {
				return err
			}
		}
		cartID = cart.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.loadCart(ctx, cartID)
}

func (r *GormRepo) resolveInTx(tx *gorm.DB, owner domain.CartOwner) (*models.Cart, error) {
	if !owner.IsUser() {
		return firstCart(tx, "session_id = ? AND user_id IS NULL", owner.SessionID)
	}

	userCart, err := firstCart(tx, "user_id = ?", *owner.UserID)
	if err != nil {
		return nil, err
	}
	if owner.SessionID == "" {
		return userCart, nil
	}

	guest, err := firstCart(tx, "session_id = ? AND user_id IS NULL", owner.SessionID)
	if err != nil || guest == nil {
		return userCart, err
	}

	if userCart == nil {
		err := tx.Model(&models.Cart{}).Where("id = ?", guest.ID).
			Updates(map[string]any{"user_id": *owner.UserID, "session_id": nil}).Error
		if err != nil {
			return nil, err
		}
		guest.UserID = owner.UserID
		guest.SessionID = nil
		return guest, nil
	}

	if err := mergeCarts(tx, guest.ID, userCart.ID); err != nil {
		return nil, err
	}
	return userCart, nil
}

func mergeCarts(tx *gorm.DB, fromID, intoID uuid.UUID) error {
	var lines []models.CartItem
	if err := tx.Where("cart_id = ?", fromID).Find(&lines).Error; err != nil {
		return err
	}

	for _, line := range lines {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", intoID, line.ProductID).
			Update("quantity", gorm.Expr("quantity + ?", line.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			continue
		}
		if err := tx.Model(&models.CartItem{}).Where("id = ?", line.ID).Update("cart_id", intoID).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("cart_id = ?", fromID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", fromID).Delete(&models.Cart{}).Error
}

func createCart(tx *gorm.DB, owner domain.CartOwner) (*models.Cart, error) {
	cart := &models.Cart{}
	if owner.IsUser() {
		cart.UserID = owner.UserID
	} else {
		sid := owner.SessionID
		cart.SessionID = &sid
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(cart).Error; err != nil {
		return nil, err
	}

	// A concurrent request may have won the insert.
	if owner.IsUser() {
		return firstCart(tx, "user_id = ?", *owner.UserID)
	}
	return firstCart(tx, "session_id = ? AND user_id IS NULL", owner.SessionID)
}

func firstCart(tx *gorm.DB, query string, args ...any) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where(query, args...).Limit(1).Find(&cart).Error; err != nil {
		return nil, err
	}
	if cart.ID == uuid.Nil {
		return nil, nil
	}
	return &cart, nil
}

func (r *GormRepo) loadCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Preload("Items.Product").
		Where("id = ?", id).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// AddItem increments an existing line or appends a new one.
func (r *GormRepo) AddItem(ctx context.Context, cartID, productID uuid.UUID, qty int) (*models.Cart, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", qty))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&models.CartItem{CartID: cartID, ProductID: productID, Quantity: qty}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.loadCart(ctx, cartID)
}

// SetItemQuantity overwrites a line's quantity; qty <= 0 deletes the line.
// A missing line yields gorm.ErrRecordNotFound.
func (r *GormRepo) SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, qty int) (*models.Cart, error) {
	db := r.DB.WithContext(ctx)

	var res *gorm.DB
	if qty <= 0 {
		res = db.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	} else {
		res = db.Model(&models.CartItem{}).Where("id = ? AND cart_id = ?", itemID, cartID).Update("quantity", qty)
	}
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.loadCart(ctx, cartID)
}

func (r *GormRepo) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.Cart, error) {
	err := r.DB.WithContext(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{}).Error
	if err != nil {
		return nil, err
	}
	return r.loadCart(ctx, cartID)
}

func (r *GormRepo) ClearCart(ctx context.Context, cartID uuid.UUID) (*models.Cart, error) {
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	return r.loadCart(ctx, cartID)
}
