package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndenisov/gostore/internal/models"
	"github.com/ndenisov/gostore/internal/repository"
)

func newOrderService(t *testing.T) (*OrderService, *CartService) {
	t.Helper()
	db := initTestDB(t)
	return &OrderService{DB: db, Repo: &repository.OrderRepository{DB: db}},
		&CartService{Repo: &repository.CartRepository{DB: db}}
}

func TestCheckout(t *testing.T) {
	orders, carts := newOrderService(t)
	ctx := context.Background()

	mug := models.Product{Name: "mug", Description: "d", Price: 10}
	require.NoError(t, orders.DB.Create(&mug).Error)
	plate := models.Product{Name: "plate", Description: "d", Price: 5.5}
	require.NoError(t, orders.DB.Create(&plate).Error)

	ok, err := carts.AddItemToCart(ctx, "u1", mug.ID, 2)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = carts.AddItemToCart(ctx, "u1", plate.ID, 1)
	require.NoError(t, err)
	require.True(t, ok)

	order, items, err := orders.Checkout(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 25.5, order.Total)
	require.Equal(t, models.StatusPending, order.Status)
	require.Len(t, items, 2)

	// the cart is drained
	remaining, err := carts.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestCheckoutEmptyCart(t *testing.T) {
	orders, _ := newOrderService(t)

	_, _, err := orders.Checkout(context.Background(), "u1")
	require.True(t, errors.Is(err, ErrEmptyCart))
}

func TestListOrdersScope(t *testing.T) {
	orders, _ := newOrderService(t)
	ctx := context.Background()

	for _, o := range []models.Order{
		{UserID: "u1", Total: 10},
		{UserID: "u2", Total: 20},
		{UserID: "u2", Total: 30},
	} {
		_, err := orders.CreateOrder(ctx, &o)
		require.NoError(t, err)
	}

	mine, err := orders.ListOrders(ctx, "u1", OrderScopeSelf)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	all, err := orders.ListOrders(ctx, "u1", OrderScopeAll)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestCreateOrderDefaults(t *testing.T) {
	orders, _ := newOrderService(t)

	order, err := orders.CreateOrder(context.Background(), &models.Order{UserID: "u1", Total: 10})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, order.Status)
	require.NotZero(t, order.CreatedAt)
}

func TestUpdateOrderStatus(t *testing.T) {
	orders, _ := newOrderService(t)
	ctx := context.Background()

	order, err := orders.CreateOrder(ctx, &models.Order{UserID: "u1", Total: 10})
	require.NoError(t, err)

	ok, err := orders.UpdateOrderStatus(ctx, order.ID, models.StatusCompleted, "")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, got.Status)
}
