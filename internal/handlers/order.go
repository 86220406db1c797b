package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/logging"
	authmw "github.com/ndenisov/gostore/internal/middleware/auth"
	"github.com/ndenisov/gostore/internal/mykafka"
	"github.com/ndenisov/gostore/internal/service"
)

type OrderHandler struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

// ListOrders returns the caller's orders; admins see everyone's. The scope
// is decided here, at the boundary, and passed into the service explicitly.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	scope := service.OrderScopeSelf
	if authmw.RoleFromContext(c) == service.RoleAdmin {
		scope = service.OrderScopeAll
	}

	orders, err := h.Svc.ListOrders(ctx, userID, scope)
	if err != nil {
		l.Error("list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	order, err := h.Svc.GetOrder(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if order.UserID != userID && authmw.RoleFromContext(c) != service.RoleAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
	}

	items, err := h.Svc.GetOrderItems(ctx, order.ID)
	if err != nil {
		l.Error("get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order": order,
		"items": items,
	})
}

// Checkout turns the caller's cart into an order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	userID := authmw.UserIDFromContext(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	order, items, err := h.Svc.Checkout(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			l.Warn("checkout_rejected", "status", 400, "reason", "empty cart")
			return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
		}
		l.Error("checkout_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]interface{}{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.Total,
	})

	l.Info("order created", "orderID", order.ID)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total,
		"status":   order.Status,
		"items":    items,
	})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not integer")
	}

	var req struct {
		Status    string `json:"status"`
		SessionID string `json:"session_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status required")
	}

	ok, err := h.Svc.UpdateOrderStatus(ctx, uint(id), req.Status, req.SessionID)
	if err != nil {
		l.Error("update_status_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	h.publish(c, map[string]interface{}{
		"type":    "order_status_updated",
		"orderID": id,
		"status":  req.Status,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"order_id": id,
		"status":   req.Status,
	})
}

func (h *OrderHandler) publish(c echo.Context, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["orderID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
