package httpserver

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/softstep/shop/internal/logging"
	"github.com/softstep/shop/internal/service"
	"github.com/softstep/shop/internal/transport"
)

// uploadField is the multipart field name the storefront sends images under.
const uploadField = "productImage"

type ProductHTTP struct {
	Svc *service.CatalogService
}

func formImage(c echo.Context) *multipart.FileHeader {
	file, err := c.FormFile(uploadField)
	if err != nil {
		return nil
	}
	return file
}

func (h *ProductHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.Svc.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list products failed", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	stock, err := strconv.Atoi(c.FormValue("stock"))
	if err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid stock", "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid stock value"})
	}

	req := transport.CreateProductRequest{
		ID:       c.FormValue("id"),
		Name:     c.FormValue("name"),
		Category: c.FormValue("category"),
		Type:     c.FormValue("type"),
		Stock:    stock,
	}

	prod, err := h.Svc.Create(ctx, req, formImage(c))
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return respondError(c, err)
	}

	l.Info("create_product_success", "productID", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")
	id := c.Param("id")

	stock, err := strconv.Atoi(c.FormValue("stock"))
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid stock", "error", err)
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "invalid stock value"})
	}

	req := transport.UpdateProductRequest{
		Name:     c.FormValue("name"),
		Category: c.FormValue("category"),
		Type:     c.FormValue("type"),
		Stock:    stock,
	}

	if err := h.Svc.Update(ctx, id, req, formImage(c)); err != nil {
		l.Warn("update_product_error", "productID", id, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product updated successfully"})
}

func (h *ProductHTTP) SetStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.set_status")
	id := c.Param("id")

	var req transport.SetProductStatusRequest
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		l.Warn("set_status_error", "status", 400, "reason", "invalid body")
		return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "isActive is required"})
	}

	if err := h.Svc.SetActive(ctx, id, *req.IsActive); err != nil {
		l.Warn("set_status_error", "productID", id, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Status updated"})
}

func (h *ProductHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")
	id := c.Param("id")

	if err := h.Svc.Delete(ctx, id); err != nil {
		l.Error("delete_product_error", "productID", id, "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Product deleted"})
}
