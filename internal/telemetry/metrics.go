package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/Skotchmaster/storefront"

// ShopMetrics records checkout outcomes. A nil *ShopMetrics is a no-op.
type ShopMetrics struct {
	ordersPlaced     metric.Int64Counter
	ordersCancelled  metric.Int64Counter
	checkoutRejected metric.Int64Counter
	stockRestored    metric.Int64Counter
	revenue          metric.Float64Counter
}

func NewShopMetrics(mp metric.MeterProvider) (*ShopMetrics, error) {
	m := mp.Meter(meterName)

	var (
		s   ShopMetrics
		err error
	)
	if s.ordersPlaced, err = m.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Orders created by checkout")); err != nil {
		return nil, err
	}
	if s.ordersCancelled, err = m.Int64Counter("storefront.orders.cancelled",
		metric.WithDescription("Orders cancelled by their owner")); err != nil {
		return nil, err
	}
	if s.checkoutRejected, err = m.Int64Counter("storefront.checkout.rejected",
		metric.WithDescription("Checkouts rejected, by reason")); err != nil {
		return nil, err
	}
	if s.stockRestored, err = m.Int64Counter("storefront.stock.units_restored",
		metric.WithDescription("Units returned to stock by cancellations")); err != nil {
		return nil, err
	}
	if s.revenue, err = m.Float64Counter("storefront.orders.revenue",
		metric.WithDescription("Order totals at checkout")); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *ShopMetrics) OrderPlaced(ctx context.Context, total decimal.Decimal) {
	if s == nil {
		return
	}
	s.ordersPlaced.Add(ctx, 1)
	s.revenue.Add(ctx, total.InexactFloat64())
}

func (s *ShopMetrics) OrderCancelled(ctx context.Context, unitsRestored int) {
	if s == nil {
		return
	}
	s.ordersCancelled.Add(ctx, 1)
	s.stockRestored.Add(ctx, int64(unitsRestored))
}

func (s *ShopMetrics) CheckoutRejected(ctx context.Context, reason string) {
	if s == nil {
		return
	}
	s.checkoutRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
