package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndenisov/gostore/internal/models"
)

func TestCalculateTotalAmountEmpty(t *testing.T) {
	require.Equal(t, 0.0, CalculateTotalAmount(nil))
	require.Equal(t, 0.0, CalculateTotalAmount([]models.CartItem{}))
}

func TestCalculateTotalAmountRounds(t *testing.T) {
	items := []models.CartItem{
		{Quantity: 2, Product: models.Product{Price: 10.005}},
		{Quantity: 1, Product: models.Product{Price: 5}},
	}
	// 2*10.005 + 5 = 25.01, already at cent precision
	require.Equal(t, 25.01, CalculateTotalAmount(items))

	items = []models.CartItem{
		{Quantity: 3, Product: models.Product{Price: 3.333}},
	}
	// 9.999 rounds half away from zero to 10.00
	require.Equal(t, 10.0, CalculateTotalAmount(items))
}

func TestCalculateTotalItems(t *testing.T) {
	require.Zero(t, CalculateTotalItems(nil))

	items := []models.CartItem{
		{Quantity: 2},
		{Quantity: 3},
		{Quantity: 1},
	}
	require.Equal(t, 6, CalculateTotalItems(items))
}
