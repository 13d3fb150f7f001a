package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/response"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_order_failed", "invalid body", err)
	}

	order, err := h.Svc.PlaceOrder(ctx, authmw.PrincipalFrom(c), req)
	if err != nil {
		return fail(l, "create_order_failed", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "total", order.TotalAmount.String())
	return response.Message(c, http.StatusCreated, "order placed", order)
}

func (h *OrderHTTP) GetMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_mine")

	pq := pageFrom(c)
	total, orders, err := h.Svc.ListMine(ctx, authmw.PrincipalFrom(c), pq.offset, pq.limit)
	if err != nil {
		return fail(l, "list_orders_failed", err)
	}
	return response.OK(c, http.StatusOK, transport.OrderList{Orders: orders, Meta: pq.meta(total)})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_order_failed", "invalid order id", err)
	}

	order, err := h.Svc.Get(ctx, authmw.PrincipalFrom(c), id)
	if err != nil {
		return fail(l, "get_order_failed", err)
	}
	return response.OK(c, http.StatusOK, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "cancel_order_failed", "invalid order id", err)
	}

	order, err := h.Svc.Cancel(ctx, authmw.PrincipalFrom(c), id)
	if err != nil {
		return fail(l, "cancel_order_failed", err)
	}

	l.Info("cancel_order_success", "order_id", order.ID)
	return response.Message(c, http.StatusOK, "order cancelled", order)
}

func (h *OrderHTTP) GetAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all")

	pq := pageFrom(c)
	total, orders, err := h.Svc.ListAll(ctx, c.QueryParam("status"), pq.offset, pq.limit)
	if err != nil {
		return fail(l, "list_all_orders_failed", err)
	}
	return response.OK(c, http.StatusOK, transport.OrderList{Orders: orders, Meta: pq.meta(total)})
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "update_order_failed", "invalid order id", err)
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_order_failed", "invalid body", err)
	}

	order, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_order_failed", err)
	}

	l.Info("update_order_success", "order_id", order.ID, "order_status", order.OrderStatus, "payment_status", order.PaymentStatus)
	return response.Message(c, http.StatusOK, "order updated", order)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "delete_order_failed", "invalid order id", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_order_failed", err)
	}

	l.Info("delete_order_success", "order_id", id)
	return response.Message(c, http.StatusOK, "order deleted", nil)
}
