package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
)

func TestOrderCreateAndGet(t *testing.T) {
	db := initTestDB(t)
	repo := &OrderRepository{DB: db}
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Order{UserID: "u1", Total: 20, Status: models.StatusPending})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "u1", got.UserID)
	require.Equal(t, models.StatusPending, got.Status)

	_, err = repo.Get(ctx, 999)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestOrderGetAllForUser(t *testing.T) {
	db := initTestDB(t)
	repo := &OrderRepository{DB: db}
	ctx := context.Background()

	for _, o := range []models.Order{
		{UserID: "u1", Total: 10, Status: models.StatusPending},
		{UserID: "u1", Total: 20, Status: models.StatusCompleted},
		{UserID: "u2", Total: 30, Status: models.StatusPending},
	} {
		_, err := repo.Create(ctx, &o)
		require.NoError(t, err)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	mine, err := repo.GetAllForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
}

func TestOrderUpdateStatus(t *testing.T) {
	db := initTestDB(t)
	repo := &OrderRepository{DB: db}
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Order{UserID: "u1", Total: 10, Status: models.StatusPending})
	require.NoError(t, err)

	ok, err := repo.UpdateStatus(ctx, created.ID, models.StatusApproved, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusApproved, got.Status)
	require.Equal(t, "sess-1", got.SessionID)

	ok, err = repo.UpdateStatus(ctx, 999, models.StatusApproved, "")
	require.NoError(t, err)
	require.False(t, ok)
}
