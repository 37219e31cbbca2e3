package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/satriadjati/goshop/internal/models"
)

func (s *GormStore) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.DB.WithContext(ctx).Create(product).Error
}

func (s *GormStore) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) ProductByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *GormStore) ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *GormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// TakeStock decrements the product's stock by qty only when enough stock
// remains, in one conditional UPDATE. The returned bool reports whether the
// decrement happened, which keeps read-then-write safe under concurrent
// orders for the same product.
func (s *GormStore) TakeStock(ctx context.Context, productID uint, qty int) (bool, error) {
	res := s.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *GormStore) ReturnStock(ctx context.Context, productID uint, qty int) error {
	return s.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}
