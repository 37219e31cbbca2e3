package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/repo"
)

// newTestStore opens a per-test in-memory sqlite database. cache=shared keeps
// every pooled connection on the same database.
func newTestStore(t *testing.T) *repo.GormStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return repo.NewGormStore(db)
}

func seedProduct(t *testing.T, store *repo.GormStore, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: "deskripsi " + name,
		Price:       price,
		Stock:       stock,
	}
	require.NoError(t, store.CreateProduct(context.Background(), product))
	return product
}

func seedUser(t *testing.T, store *repo.GormStore, name, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleHelper,
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func productStock(t *testing.T, store *repo.GormStore, id uint) int {
	t.Helper()
	product, err := store.ProductByID(context.Background(), id)
	require.NoError(t, err)
	return product.Stock
}
