package service

import (
	"math"

	"github.com/ndenisov/gostore/internal/models"
)

// CalculateTotalAmount sums price times quantity over the lines and rounds
// the result to 2 decimal places, half away from zero. The caller must have
// resolved each line's Product (repository GetItems does).
func CalculateTotalAmount(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

// CalculateTotalItems sums the quantities over the lines, 0 when empty.
func CalculateTotalItems(items []models.CartItem) int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
