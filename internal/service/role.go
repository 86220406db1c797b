package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type RoleService struct {
	DB *gorm.DB
}

// EnsureRoles creates the built-in roles if they are missing. Safe to run on
// every startup.
func (s *RoleService) EnsureRoles(ctx context.Context) error {
	for _, name := range []string{RoleCustomer, RoleAdmin} {
		var role models.Role
		err := s.DB.WithContext(ctx).Where("name = ?", name).First(&role).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.DB.WithContext(ctx).Create(&models.Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// AssignRole sets the user's role, defaulting to customer when none given.
func (s *RoleService) AssignRole(ctx context.Context, user *models.User, role string) error {
	if role == "" {
		role = RoleCustomer
	}
	user.Role = role
	return s.DB.WithContext(ctx).Model(user).Update("role", role).Error
}
