package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
)

func TestProductCRUD(t *testing.T) {
	db := initTestDB(t)
	repo := &ProductRepository{DB: db, ImageDir: t.TempDir()}
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Product{Name: "mug", Description: "ceramic", Price: 12.5, Count: 3})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "mug", got.Name)

	got.Price = 9.99
	updated, err := repo.Update(ctx, got)
	require.NoError(t, err)
	require.Equal(t, 9.99, updated.Price)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestProductGetNotFound(t *testing.T) {
	db := initTestDB(t)
	repo := &ProductRepository{DB: db, ImageDir: t.TempDir()}

	_, err := repo.Get(context.Background(), 42)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProductDeleteRemovesImage(t *testing.T) {
	db := initTestDB(t)
	dir := t.TempDir()
	repo := &ProductRepository{DB: db, ImageDir: dir}
	ctx := context.Background()

	imagePath := filepath.Join(dir, "mug.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("png"), 0o644))

	created, err := repo.Create(ctx, &models.Product{Name: "mug", Description: "d", Price: 1, ImageURL: "/mug.png"})
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, statErr := os.Stat(imagePath)
	require.True(t, os.IsNotExist(statErr))

	_, err = repo.Get(ctx, created.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProductDeleteMissing(t *testing.T) {
	db := initTestDB(t)
	repo := &ProductRepository{DB: db, ImageDir: t.TempDir()}

	ok, err := repo.Delete(context.Background(), 42)
	require.NoError(t, err)
	require.False(t, ok)
}
