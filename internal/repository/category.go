package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Get returns gorm.ErrRecordNotFound when no category exists, so absence is
// distinguishable from a zero-value row.
func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	var existing models.Category
	if err := r.DB.WithContext(ctx).First(&existing, category.ID).Error; err != nil {
		return nil, err
	}

	existing.Name = category.Name
	if err := r.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var category models.Category
	err := r.DB.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	res := r.DB.WithContext(ctx).Delete(&category)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
