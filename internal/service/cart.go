package service

import (
	"context"

	"github.com/ndenisov/gostore/internal/models"
)

// CartRepo is the store-facing contract the cart service delegates to.
// Implemented by repository.CartRepository.
type CartRepo interface {
	GetAll(ctx context.Context, userID string) ([]models.CartItem, error)
	GetItems(ctx context.Context, userID string) ([]models.CartItem, error)
	TotalCount(ctx context.Context, userID string) (int, error)
	AddItem(ctx context.Context, userID string, productID uint, count int) (bool, error)
	IncreaseQuantity(ctx context.Context, userID string, productID uint, amount int) (bool, error)
	DecreaseQuantity(ctx context.Context, userID string, productID uint, amount int) (bool, error)
	RemoveItem(ctx context.Context, userID string, productID uint) (bool, error)
	ClearCart(ctx context.Context, userID string) (bool, error)
}

// CartService validates input and re-checks line existence before delegating
// to the repository. The pre-check turns a storage duplicate-key failure into
// a plain false at the validation boundary and keeps business policy out of
// the store.
type CartService struct {
	Repo CartRepo
}

func (s *CartService) GetUserCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.Repo.GetAll(ctx, userID)
}

// GetCartItems returns the user's lines with Product resolved.
func (s *CartService) GetCartItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.Repo.GetItems(ctx, userID)
}

func (s *CartService) GetCartItemCount(ctx context.Context, userID string) (int, error) {
	return s.Repo.TotalCount(ctx, userID)
}

// AddItemToCart adds a product the user does not already have. Empty user
// id, non-positive quantity and an existing line all come back false.
func (s *CartService) AddItemToCart(ctx context.Context, userID string, productID uint, quantity int) (bool, error) {
	if userID == "" || quantity <= 0 {
		return false, nil
	}

	items, err := s.Repo.GetItems(ctx, userID)
	if err != nil {
		return false, err
	}
	if findItem(items, productID) != nil {
		return false, nil
	}

	return s.Repo.AddItem(ctx, userID, productID, quantity)
}

// UpdateItemQuantity applies a signed quantity change. A change of zero is a
// no-op success: the cart already satisfies the request.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID string, productID uint, quantityChange int) (bool, error) {
	if userID == "" {
		return false, nil
	}
	if quantityChange == 0 {
		return true, nil
	}

	items, err := s.Repo.GetItems(ctx, userID)
	if err != nil {
		return false, err
	}
	if findItem(items, productID) == nil {
		return false, nil
	}

	if quantityChange > 0 {
		return s.Repo.IncreaseQuantity(ctx, userID, productID, quantityChange)
	}
	return s.Repo.DecreaseQuantity(ctx, userID, productID, -quantityChange)
}

func (s *CartService) RemoveItemFromCart(ctx context.Context, userID string, productID uint) (bool, error) {
	if userID == "" {
		return false, nil
	}

	items, err := s.Repo.GetItems(ctx, userID)
	if err != nil {
		return false, err
	}
	if findItem(items, productID) == nil {
		return false, nil
	}

	return s.Repo.RemoveItem(ctx, userID, productID)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) (bool, error) {
	return s.Repo.ClearCart(ctx, userID)
}

func findItem(items []models.CartItem, productID uint) *models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			return &items[i]
		}
	}
	return nil
}
