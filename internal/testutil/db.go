// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

// NewDB opens a private in-memory database with the schema migrated. The pool
// is capped at one connection so concurrent transactions serialize.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func CreateProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:        name,
		Description: name + " description",
		Size:        "500ml",
		Price:       decimal.NewFromInt(price),
		Stock:       stock,
		Features:    []string{"tested"},
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func CreateUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	u := &models.User{
		Name:         "User " + email,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Phone:        "5550100",
		Role:         role,
		IsVerified:   true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func Stock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()

	var p models.Product
	require.NoError(t, db.Where("id = ?", id).First(&p).Error)
	return p.Stock
}
