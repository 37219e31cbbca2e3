package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/satriadjati/goshop/internal/models"
)

// Store is the persistence surface the services are written against.
// Transact runs fn against a store bound to one database transaction;
// returning an error rolls every write back.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	ProductByID(ctx context.Context, id uint) (*models.Product, error)
	ProductByName(ctx context.Context, name string) (*models.Product, error)
	ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	TakeStock(ctx context.Context, productID uint, qty int) (bool, error)
	ReturnStock(ctx context.Context, productID uint, qty int) error

	CreateOrder(ctx context.Context, order *models.Order) error
	OrderByID(ctx context.Context, id uint) (*models.Order, error)
	OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error)
	OrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	SetOrderItemQuantity(ctx context.Context, itemID uint, quantity uint) error
	DeleteOrderItem(ctx context.Context, itemID uint) error
	SetOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) error
	SetOrderTotal(ctx context.Context, orderID uint, total float64) error
	DeleteOrder(ctx context.Context, orderID uint) error

	Transact(ctx context.Context, fn func(Store) error) error
}

// ErrNotFound mirrors gorm.ErrRecordNotFound so callers do not depend on gorm.
var ErrNotFound = gorm.ErrRecordNotFound

type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}
