package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/response"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")

	popular, err := parseBool(c.QueryParam("popular"))
	if err != nil {
		return badRequest(l, "get_products_failed", "popular must be true or false", err)
	}
	pq := pageFrom(c)

	total, items, err := h.Svc.ListProducts(ctx, repo.ProductFilter{Popular: popular, Size: c.QueryParam("size")}, pq.offset, pq.limit)
	if err != nil {
		return fail(l, "get_products_failed", err)
	}

	return response.OK(c, http.StatusOK, transport.ProductList{Products: items, Meta: pq.meta(total)})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_product_failed", "invalid product id", err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product_failed", err)
	}
	return response.OK(c, http.StatusOK, product)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	pq := pageFrom(c)
	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), pq.offset, pq.limit)
	if err != nil {
		return fail(l, "search_products_failed", err)
	}

	l.Debug("search_products_success", "total", total)
	return response.OK(c, http.StatusOK, transport.ProductList{Products: items, Meta: pq.meta(total)})
}

func (h *CatalogHTTP) CustomProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.custom")

	var req transport.CustomProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "custom_product_failed", "invalid body", err)
	}

	product, created, err := h.Svc.CustomProduct(ctx, req)
	if err != nil {
		return fail(l, "custom_product_failed", err)
	}

	if created {
		l.Info("custom_product_created", "product_id", product.ID, "size", product.Size)
		return response.OK(c, http.StatusCreated, product)
	}
	return response.OK(c, http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_product_failed", "invalid body", err)
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "create_product_failed", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return response.Message(c, http.StatusCreated, "product created", product)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "patch_product_failed", "invalid product id", err)
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_product_failed", "invalid body", err)
	}

	product, err := h.Svc.UpdateProduct(ctx, id, req)
	if err != nil {
		return fail(l, "patch_product_failed", err)
	}

	l.Info("patch_product_success", "product_id", product.ID)
	return response.Message(c, http.StatusOK, "product updated", product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "delete_product_failed", "invalid product id", err)
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "delete_product_failed", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return response.Message(c, http.StatusOK, "product deleted", nil)
}
