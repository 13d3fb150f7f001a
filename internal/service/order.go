package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/domain"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/telemetry"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const defaultPaymentMethod = "card"

var zipCodeRe = regexp.MustCompile(`^\d{5,6}$`)

type OrderService struct {
	Repo    *repo.GormRepo
	Events  EventPublisher
	Metrics *telemetry.ShopMetrics
}

// PlaceOrder reserves stock and records the order for the principal. Either
// every line is reserved or nothing changes.
func (s *OrderService) PlaceOrder(ctx context.Context, p *domain.Principal, req transport.CreateOrderRequest) (*models.Order, error) {
	if p == nil {
		return nil, fail(ErrUnauthorized, "authentication required")
	}
	if err := validateOrderRequest(&req); err != nil {
		s.Metrics.CheckoutRejected(ctx, "validation")
		return nil, err
	}

	order := &models.Order{
		UserID: p.UserID,
		Customer: models.CustomerInfo{
			Name:  p.Name,
			Email: p.Email,
			Phone: p.Phone,
		},
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusPending,
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, models.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	if err := s.Repo.PlaceOrder(ctx, order); err != nil {
		var stockErr *repo.StockError
		var missing *repo.MissingProductError
		switch {
		case errors.As(err, &stockErr):
			s.Metrics.CheckoutRejected(ctx, "insufficient_stock")
			return nil, fail(ErrInsufficientStock, "insufficient stock for %s", stockErr.Name)
		case errors.As(err, &missing):
			s.Metrics.CheckoutRejected(ctx, "product_not_found")
			return nil, fail(ErrNotFound, "product %s not found", missing.ProductID)
		}
		return nil, err
	}

	s.Metrics.OrderPlaced(ctx, order.TotalAmount)
	publish(ctx, s.Events, TopicOrders, order.ID.String(), map[string]any{
		"type":        "order_created",
		"orderID":     order.ID,
		"userID":      order.UserID,
		"totalAmount": order.TotalAmount.String(),
		"items":       len(order.Items),
	})
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, p *domain.Principal, offset, limit int) (int64, []models.Order, error) {
	if p == nil {
		return 0, nil, fail(ErrUnauthorized, "authentication required")
	}
	id := p.UserID
	return s.Repo.ListOrders(ctx, repo.OrderFilter{UserID: &id}, offset, limit)
}

// Get returns the order if the principal owns it or is an admin.
func (s *OrderService) Get(ctx context.Context, p *domain.Principal, id uuid.UUID) (*models.Order, error) {
	if p == nil {
		return nil, fail(ErrUnauthorized, "authentication required")
	}
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fail(ErrNotFound, "order not found")
		}
		return nil, err
	}
	if order.UserID != p.UserID && !p.IsAdmin() {
		return nil, fail(ErrForbidden, "not allowed to view this order")
	}
	return order, nil
}

// Cancel moves the principal's pending order to cancelled and restocks it.
func (s *OrderService) Cancel(ctx context.Context, p *domain.Principal, id uuid.UUID) (*models.Order, error) {
	if p == nil {
		return nil, fail(ErrUnauthorized, "authentication required")
	}
	order, err := s.Repo.CancelOrder(ctx, id, p.UserID)
	if err != nil {
		switch {
		case repo.IsNotFound(err):
			return nil, fail(ErrNotFound, "order not found")
		case errors.Is(err, repo.ErrOrderNotPending):
			return nil, fail(ErrOrderNotPending, "only pending orders can be cancelled")
		}
		return nil, err
	}

	units := 0
	for _, it := range order.Items {
		units += it.Quantity
	}
	s.Metrics.OrderCancelled(ctx, units)
	publish(ctx, s.Events, TopicOrders, order.ID.String(), map[string]any{
		"type":          "order_cancelled",
		"orderID":       order.ID,
		"userID":        order.UserID,
		"unitsRestored": units,
	})
	return order, nil
}

func (s *OrderService) ListAll(ctx context.Context, status string, offset, limit int) (int64, []models.Order, error) {
	status = strings.TrimSpace(status)
	if status != "" && !models.ValidOrderStatus(status) {
		return 0, nil, fail(ErrValidation, "invalid order status")
	}
	return s.Repo.ListOrders(ctx, repo.OrderFilter{Status: status}, offset, limit)
}

// Update sets order and/or payment status. Transitions are not validated
// except that a cancelled order stays cancelled. Cancelling here does not restock.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req transport.UpdateOrderRequest) (*models.Order, error) {
	u := repo.OrderStatusUpdate{
		OrderStatus:   strings.TrimSpace(req.OrderStatus),
		PaymentStatus: strings.TrimSpace(req.PaymentStatus),
	}
	if u.OrderStatus == "" && u.PaymentStatus == "" {
		return nil, fail(ErrValidation, "order_status or payment_status is required")
	}
	if u.OrderStatus != "" && !models.ValidOrderStatus(u.OrderStatus) {
		return nil, fail(ErrValidation, "invalid order status")
	}
	if u.PaymentStatus != "" && !models.ValidPaymentStatus(u.PaymentStatus) {
		return nil, fail(ErrValidation, "invalid payment status")
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, id, u)
	if err != nil {
		switch {
		case repo.IsNotFound(err):
			return nil, fail(ErrNotFound, "order not found")
		case errors.Is(err, repo.ErrOrderCancelled):
			return nil, fail(ErrValidation, "cancelled orders cannot be reopened")
		}
		return nil, err
	}

	publish(ctx, s.Events, TopicOrders, order.ID.String(), map[string]any{
		"type":          "order_updated",
		"orderID":       order.ID,
		"orderStatus":   order.OrderStatus,
		"paymentStatus": order.PaymentStatus,
	})
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteOrder(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fail(ErrNotFound, "order not found")
		}
		return err
	}
	publish(ctx, s.Events, TopicOrders, id.String(), map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})
	return nil
}

func validateOrderRequest(req *transport.CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return fail(ErrValidation, "order must contain at least one item")
	}
	for _, it := range req.Items {
		if it.ProductID == uuid.Nil {
			return fail(ErrValidation, "product_id is required")
		}
		if it.Quantity < 1 {
			return fail(ErrValidation, "quantity must be at least 1")
		}
	}

	a := &req.ShippingAddress
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.ZipCode = strings.TrimSpace(a.ZipCode)
	a.Country = strings.TrimSpace(a.Country)
	switch {
	case len(a.Street) < 5:
		return fail(ErrValidation, "street address must be at least 5 characters")
	case len(a.City) < 2:
		return fail(ErrValidation, "city must be at least 2 characters")
	case len(a.State) < 2:
		return fail(ErrValidation, "state must be at least 2 characters")
	case !zipCodeRe.MatchString(a.ZipCode):
		return fail(ErrValidation, "zip code must be 5 or 6 digits")
	case len(a.Country) < 2:
		return fail(ErrValidation, "country must be at least 2 characters")
	}

	req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	if req.PaymentMethod == "" {
		req.PaymentMethod = defaultPaymentMethod
	}
	return nil
}
