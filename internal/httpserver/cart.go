package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/domain"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/response"
)

type CartHTTP struct {
	Svc *service.CartService
}

func cartOwner(c echo.Context) (domain.CartOwner, error) {
	owner, err := authmw.CartOwnerFrom(c)
	if err != nil {
		return owner, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return owner, nil
}

func cartJSON(c echo.Context, cart *models.Cart) error {
	return response.OK(c, http.StatusOK, transport.NewCartView(cart))
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	owner, err := cartOwner(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetCart(ctx, owner)
	if err != nil {
		return fail(l, "get_cart_failed", err)
	}
	return cartJSON(c, cart)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	owner, err := cartOwner(c)
	if err != nil {
		return err
	}

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_item_failed", "invalid body", err)
	}

	cart, err := h.Svc.AddItem(ctx, owner, req.ProductID, req.Quantity)
	if err != nil {
		return fail(l, "add_item_failed", err)
	}

	l.Info("add_item_success", "owner", owner.Key(), "product_id", req.ProductID)
	return cartJSON(c, cart)
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_item")

	owner, err := cartOwner(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return badRequest(l, "update_item_failed", "invalid item id", err)
	}

	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_item_failed", "invalid body", err)
	}

	cart, err := h.Svc.UpdateItem(ctx, owner, itemID, req.Quantity)
	if err != nil {
		return fail(l, "update_item_failed", err)
	}
	return cartJSON(c, cart)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	owner, err := cartOwner(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return badRequest(l, "remove_item_failed", "invalid item id", err)
	}

	cart, err := h.Svc.RemoveItem(ctx, owner, itemID)
	if err != nil {
		return fail(l, "remove_item_failed", err)
	}
	return cartJSON(c, cart)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	owner, err := cartOwner(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.Clear(ctx, owner)
	if err != nil {
		return fail(l, "clear_cart_failed", err)
	}
	return cartJSON(c, cart)
}
