package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

// GetCart returns the owner's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, owner domain.CartOwner) (*models.Cart, error) {
	return s.Repo.ResolveCart(ctx, owner, true)
}

// AddItem adds qty units of a product; nil qty means one unit. Stock is not
// checked here, only at checkout.
func (s *CartService) AddItem(ctx context.Context, owner domain.CartOwner, productID uuid.UUID, qty *int) (*models.Cart, error) {
	n := 1
	if qty != nil {
		n = *qty
	}
	if n < 1 {
		return nil, fail(ErrValidation, "quantity must be at least 1")
	}
	if productID == uuid.Nil {
		return nil, fail(ErrValidation, "product_id is required")
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "product not found")
		}
		return nil, err
	}

	cart, err := s.Repo.ResolveCart(ctx, owner, true)
	if err != nil {
		return nil, err
	}
	cart, err = s.Repo.AddItem(ctx, cart.ID, productID, n)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, owner, "cart_item_added", map[string]any{"productID": productID, "quantity": n})
	return cart, nil
}

// UpdateItem overwrites a line's quantity; a quantity of zero or less removes it.
func (s *CartService) UpdateItem(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID, qty *int) (*models.Cart, error) {
	if qty == nil {
		return nil, fail(ErrValidation, "quantity is required")
	}

	cart, err := s.existing(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart, err = s.Repo.SetItemQuantity(ctx, cart.ID, itemID, *qty)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fail(ErrNotFound, "item not found in cart")
		}
		return nil, err
	}

	eventType := "cart_item_updated"
	if *qty <= 0 {
		eventType = "cart_item_removed"
	}
	s.emit(ctx, owner, eventType, map[string]any{"itemID": itemID, "quantity": *qty})
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, owner domain.CartOwner, itemID uuid.UUID) (*models.Cart, error) {
	cart, err := s.existing(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart, err = s.Repo.RemoveItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, owner, "cart_item_removed", map[string]any{"itemID": itemID})
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, owner domain.CartOwner) (*models.Cart, error) {
	cart, err := s.existing(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart, err = s.Repo.ClearCart(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, owner, "cart_cleared", nil)
	return cart, nil
}

func (s *CartService) existing(ctx context.Context, owner domain.CartOwner) (*models.Cart, error) {
	cart, err := s.Repo.ResolveCart(ctx, owner, false)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "cart not found")
	}
	return cart, err
}

func (s *CartService) emit(ctx context.Context, owner domain.CartOwner, eventType string, fields map[string]any) {
	event := map[string]any{"type": eventType, "owner": owner.Key()}
	for k, v := range fields {
		event[k] = v
	}
	publish(ctx, s.Events, TopicCarts, owner.Key(), event)
}
