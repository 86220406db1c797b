package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
	"github.com/ndenisov/gostore/internal/repository"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.User{},
		&models.Role{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newCartService(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db := initTestDB(t)
	return &CartService{Repo: &repository.CartRepository{DB: db}}, db
}

func TestAddItemToCartValidation(t *testing.T) {
	svc, db := newCartService(t)
	ctx := context.Background()

	ok, err := svc.AddItemToCart(ctx, "", 1, 2)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.AddItemToCart(ctx, "u1", 1, 0)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.AddItemToCart(ctx, "u1", 1, -3)
	require.NoError(t, err)
	require.False(t, ok)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAddItemToCartDuplicate(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	ok, err := svc.AddItemToCart(ctx, "u1", 7, 2)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.AddItemToCart(ctx, "u1", 7, 1)
	require.NoError(t, err)
	require.False(t, ok)

	items, err := svc.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
}

func TestUpdateItemQuantityZeroChange(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	ok, err := svc.AddItemToCart(ctx, "u1", 7, 2)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.UpdateItemQuantity(ctx, "u1", 7, 0)
	require.NoError(t, err)
	require.True(t, ok)

	items, err := svc.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 2, items[0].Quantity)
}

func TestUpdateItemQuantityMissing(t *testing.T) {
	svc, _ := newCartService(t)

	ok, err := svc.UpdateItemQuantity(context.Background(), "u1", 7, 3)
	require.NoError(t, err)
	require.False(t, ok)
}

// The full lifecycle: add, grow, shrink past zero, then remove from an
// already-empty cart.
func TestCartScenario(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	ok, err := svc.AddItemToCart(ctx, "u1", 7, 2)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.UpdateItemQuantity(ctx, "u1", 7, 3)
	require.NoError(t, err)
	require.True(t, ok)

	items, err := svc.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)

	ok, err = svc.UpdateItemQuantity(ctx, "u1", 7, -5)
	require.NoError(t, err)
	require.True(t, ok)

	items, err = svc.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, items)

	ok, err = svc.RemoveItemFromCart(ctx, "u1", 7)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRemoveItemFromCart(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	ok, err := svc.RemoveItemFromCart(ctx, "", 7)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.AddItemToCart(ctx, "u1", 7, 1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.RemoveItemFromCart(ctx, "u1", 7)
	require.NoError(t, err)
	require.True(t, ok)

	count, err := svc.GetCartItemCount(ctx, "u1")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestClearCartIdempotent(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	for pid := uint(1); pid <= 3; pid++ {
		ok, err := svc.AddItemToCart(ctx, "u1", pid, int(pid))
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := svc.ClearCart(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)

	items, err := svc.GetUserCart(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, items)

	ok, err = svc.ClearCart(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGetCartItemCount(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	ok, err := svc.AddItemToCart(ctx, "u1", 1, 2)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = svc.AddItemToCart(ctx, "u1", 2, 3)
	require.NoError(t, err)
	require.True(t, ok)

	count, err := svc.GetCartItemCount(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 5, count)
}
