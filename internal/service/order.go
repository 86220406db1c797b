package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
	"github.com/ndenisov/gostore/internal/repository"
)

var ErrEmptyCart = errors.New("no items in cart")

// OrderScope is the listing capability chosen by the boundary: a handler
// decides from the caller's role whether the listing covers one user or all
// of them. The service never inspects ambient identity state.
type OrderScope int

const (
	OrderScopeSelf OrderScope = iota
	OrderScopeAll
)

type OrderService struct {
	DB   *gorm.DB
	Repo *repository.OrderRepository
}

func (s *OrderService) ListOrders(ctx context.Context, userID string, scope OrderScope) ([]models.Order, error) {
	if scope == OrderScopeAll {
		return s.Repo.GetAll(ctx)
	}
	return s.Repo.GetAllForUser(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.Repo.Get(ctx, id)
}

func (s *OrderService) GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	return s.Repo.GetItems(ctx, orderID)
}

func (s *OrderService) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}
	return s.Repo.Create(ctx, order)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status, sessionID string) (bool, error) {
	return s.Repo.UpdateStatus(ctx, id, status, sessionID)
}

// Checkout converts the user's cart into an order inside one transaction:
// price each line against its product, create the header and items, then
// drain the cart. The order total is rounded the same way the cart summary
// is.
func (s *OrderService) Checkout(ctx context.Context, userID string) (*models.Order, []models.OrderItem, error) {
	var (
		order      models.Order
		orderItems []models.OrderItem
	)

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order = models.Order{
			UserID:    userID,
			Total:     CalculateTotalAmount(items),
			Status:    models.StatusPending,
			CreatedAt: time.Now().Unix(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems = make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				UserID:    userID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     it.Product.Price,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	return &order, orderItems, nil
}
