package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ndenisov/gostore/internal/models"
)

func TestEnsureRolesIdempotent(t *testing.T) {
	db := initTestDB(t)
	svc := &RoleService{DB: db}
	ctx := context.Background()

	require.NoError(t, svc.EnsureRoles(ctx))
	require.NoError(t, svc.EnsureRoles(ctx))

	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func TestAssignRoleDefaultsToCustomer(t *testing.T) {
	db := initTestDB(t)
	svc := &RoleService{DB: db}
	ctx := context.Background()

	user := models.User{Username: "alice", PasswordHash: "x", Role: RoleCustomer}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, svc.AssignRole(ctx, &user, ""))
	require.Equal(t, RoleCustomer, user.Role)

	require.NoError(t, svc.AssignRole(ctx, &user, RoleAdmin))

	var got models.User
	require.NoError(t, db.First(&got, "id = ?", user.ID).Error)
	require.Equal(t, RoleAdmin, got.Role)
}
