package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ndenisov/gostore/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	db := initTestDB(t)
	secret := []byte("refresh-secret")

	token, err := SignRefreshToken("u1", "customer", secret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(db, token, "u1"))

	claims, err := ValidateRefresh(token, secret, db)
	require.NoError(t, err)
	require.Equal(t, "u1", claims["sub"])
	require.Equal(t, "customer", claims["role"])
}

func TestValidateRefreshRejectsAccessToken(t *testing.T) {
	db := initTestDB(t)
	secret := []byte("shared-secret")

	token, err := SignAccessToken("u1", "customer", secret)
	require.NoError(t, err)

	_, err = ValidateRefresh(token, secret, db)
	require.Error(t, err)
}

func TestValidateRefreshRejectsUnknownToken(t *testing.T) {
	db := initTestDB(t)
	secret := []byte("refresh-secret")

	token, err := SignRefreshToken("u1", "customer", secret)
	require.NoError(t, err)

	_, err = ValidateRefresh(token, secret, db)
	require.Error(t, err)
}

func TestValidateRefreshRejectsRevoked(t *testing.T) {
	db := initTestDB(t)
	secret := []byte("refresh-secret")

	token, err := SignRefreshToken("u1", "customer", secret)
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(db, token, "u1"))
	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked", true).Error)

	_, err = ValidateRefresh(token, secret, db)
	require.Error(t, err)
}

func TestValidateRefreshRejectsWrongSecret(t *testing.T) {
	db := initTestDB(t)

	token, err := SignRefreshToken("u1", "customer", []byte("right"))
	require.NoError(t, err)
	require.NoError(t, SaveRefreshToken(db, token, "u1"))

	_, err = ValidateRefresh(token, []byte("wrong"), db)
	require.Error(t, err)
}
