package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ndenisov/gostore/internal/logging"
	authmw "github.com/ndenisov/gostore/internal/middleware/auth"
	"github.com/ndenisov/gostore/internal/mykafka"
	"github.com/ndenisov/gostore/internal/service"
)

type CartHandler struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

// GetCart returns the caller's cart lines with the product resolved.
func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetCartItems(ctx, userID)
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, items)
}

// GetCartSummary returns the derived view: total amount and item count.
func (h *CartHandler) GetCartSummary(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.summary")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetCartItems(ctx, userID)
	if err != nil {
		l.Error("cart_summary_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total_amount": service.CalculateTotalAmount(items),
		"total_items":  service.CalculateTotalItems(items),
	})
}

func (h *CartHandler) GetCartCount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.count")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count, err := h.Svc.GetCartItemCount(ctx, userID)
	if err != nil {
		l.Error("cart_count_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ok, err := h.Svc.AddItemToCart(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		l.Warn("add_to_cart_rejected", "status", 409, "productID", req.ProductID, "quantity", req.Quantity)
		return echo.NewHTTPError(http.StatusConflict, "item already in cart or quantity invalid")
	}

	h.publish(c, map[string]interface{}{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  req.Quantity,
	})

	l.Info("item added to cart", "productID", req.ProductID)
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})
}

// UpdateQuantity applies a signed change to one line's quantity.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Change    int  `json:"change"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ok, err := h.Svc.UpdateItemQuantity(ctx, userID, req.ProductID, req.Change)
	if err != nil {
		l.Error("update_quantity_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		l.Warn("update_quantity_rejected", "status", 404, "productID", req.ProductID)
		return echo.NewHTTPError(http.StatusNotFound, "item not found")
	}

	h.publish(c, map[string]interface{}{
		"type":      "cart_quantity_updated",
		"userID":    userID,
		"productID": req.ProductID,
		"change":    req.Change,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"product_id": req.ProductID,
		"change":     req.Change,
	})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || productID <= 0 {
		l.Warn("remove_item_error", "status", 400, "reason", "invalid product id")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	ok, err := h.Svc.RemoveItemFromCart(ctx, userID, uint(productID))
	if err != nil {
		l.Error("remove_item_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		l.Warn("remove_item_rejected", "status", 404, "productID", productID)
		return echo.NewHTTPError(http.StatusNotFound, "item not found")
	}

	h.publish(c, map[string]interface{}{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{"deleted_item": productID})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if _, err := h.Svc.ClearCart(ctx, userID); err != nil {
		l.Error("clear_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]interface{}{
		"type":   "cart_cleared",
		"userID": userID,
	})

	l.Info("cart cleared")
	return c.JSON(http.StatusOK, map[string]string{"status": "cart cleared"})
}

func (h *CartHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
