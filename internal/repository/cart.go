package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
)

// CartRepository mutates cart lines directly against the store. Business
// outcomes (duplicate add, missing line, non-positive amount) come back as a
// bool; the error is reserved for store failures. Quantity mutations are
// read-then-write with a single-statement commit: the store's row-level
// atomicity is the unit of consistency, there is no version token.
type CartRepository struct {
	DB *gorm.DB
}

// GetAll returns every cart line for the user, without the product resolved.
func (r *CartRepository) GetAll(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItems returns every cart line for the user with Product pre-fetched, so
// price and name are available without further lookups.
func (r *CartRepository) GetItems(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// TotalCount sums the quantities across the user's cart, 0 when empty.
func (r *CartRepository) TotalCount(ctx context.Context, userID string) (int, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// AddItem inserts a new line. Returns false when count is non-positive or a
// line for the (user, product) pair already exists.
func (r *CartRepository) AddItem(ctx context.Context, userID string, productID uint, count int) (bool, error) {
	if count <= 0 {
		return false, nil
	}

	var existing models.CartItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  count,
	}
	res := r.DB.WithContext(ctx).Create(&item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncreaseQuantity adds amount to an existing line's quantity.
func (r *CartRepository) IncreaseQuantity(ctx context.Context, userID string, productID uint, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	item, err := r.find(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}

	res := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", item.Quantity+amount)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DecreaseQuantity subtracts amount from an existing line's quantity and
// deletes the line outright when the result would be zero or below, so a
// non-positive quantity is never persisted.
func (r *CartRepository) DecreaseQuantity(ctx context.Context, userID string, productID uint, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	item, err := r.find(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}

	newQuantity := item.Quantity - amount
	if newQuantity <= 0 {
		res := r.DB.WithContext(ctx).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&models.CartItem{})
		if res.Error != nil {
			return false, res.Error
		}
		return res.RowsAffected > 0, nil
	}

	res := r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", newQuantity)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RemoveItem deletes one line. Returns false when no line exists.
func (r *CartRepository) RemoveItem(ctx context.Context, userID string, productID uint) (bool, error) {
	item, err := r.find(ctx, userID, productID)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, nil
	}

	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClearCart deletes every line for the user. Clearing an already-empty cart
// is a success.
func (r *CartRepository) ClearCart(ctx context.Context, userID string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return true, nil
}

func (r *CartRepository) find(ctx context.Context, userID string, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
