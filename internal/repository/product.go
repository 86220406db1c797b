package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
)

// ProductRepository owns product rows and the image files stored under
// ImageDir: deleting a product also unlinks its image.
type ProductRepository struct {
	DB       *gorm.DB
	ImageDir string
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Get returns gorm.ErrRecordNotFound when no product exists.
func (r *ProductRepository) Get(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	var existing models.Product
	if err := r.DB.WithContext(ctx).First(&existing, product.ID).Error; err != nil {
		return nil, err
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Count = product.Count
	existing.CategoryID = product.CategoryID
	if product.ImageURL != "" {
		existing.ImageURL = product.ImageURL
	}

	if err := r.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete removes the product row and its stored image file. Returns false
// when no product exists.
func (r *ProductRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if product.ImageURL != "" {
		imagePath := filepath.Join(r.ImageDir, filepath.Base(strings.TrimPrefix(product.ImageURL, "/")))
		if _, statErr := os.Stat(imagePath); statErr == nil {
			if rmErr := os.Remove(imagePath); rmErr != nil {
				return false, rmErr
			}
		}
	}

	res := r.DB.WithContext(ctx).Delete(&product)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
