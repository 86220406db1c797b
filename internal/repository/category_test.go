package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
)

func TestCategoryCRUD(t *testing.T) {
	db := initTestDB(t)
	repo := &CategoryRepository{DB: db}
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Category{Name: "kitchen"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	updated, err := repo.Update(ctx, &models.Category{ID: created.ID, Name: "homeware"})
	require.NoError(t, err)
	require.Equal(t, "homeware", updated.Name)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.Get(ctx, created.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, ok)
}
