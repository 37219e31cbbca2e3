package repo

import (
	"context"

	"github.com/satriadjati/goshop/internal/models"
)

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.DB.WithContext(ctx).Create(order).Error
}

func (s *GormStore) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *GormStore) OrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) OrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.DB.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return s.DB.WithContext(ctx).Create(item).Error
}

func (s *GormStore) SetOrderItemQuantity(ctx context.Context, itemID uint, quantity uint) error {
	return s.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (s *GormStore) DeleteOrderItem(ctx context.Context, itemID uint) error {
	return s.DB.WithContext(ctx).Delete(&models.OrderItem{}, itemID).Error
}

func (s *GormStore) SetOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) error {
	return s.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (s *GormStore) SetOrderTotal(ctx context.Context, orderID uint, total float64) error {
	return s.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_price", total).Error
}

func (s *GormStore) DeleteOrder(ctx context.Context, orderID uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Order{}, orderID).Error
}
