package service

import (
	"context"
	"errors"
	"time"

	"github.com/satriadjati/goshop/internal/logging"
	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/repo"
)

const orderTTL = time.Hour

type OrderService struct {
	Store repo.Store
}

type OrderItemInput struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

type CreateOrderResult struct {
	OrderID   uint      `json:"orderId"`
	ExpiredAt time.Time `json:"expiredTime"`
}

type OrderLine struct {
	ProductID    uint    `json:"productId"`
	Quantity     uint    `json:"quantity"`
	ProductName  string  `json:"productName"`
	ProductPrice float64 `json:"productPrice"`
	TotalPrice   float64 `json:"totalPrice"`
}

type OrderSummary struct {
	ID           uint               `json:"id"`
	TotalPrice   float64            `json:"totalPrice"`
	Status       models.OrderStatus `json:"status"`
	CustomerName string             `json:"customerName"`
	ExpiredAt    time.Time          `json:"expiredAt"`
	Items        []OrderLine        `json:"orderItems"`
}

type StatusChange struct {
	OrderID        uint               `json:"orderId"`
	PreviousStatus models.OrderStatus `json:"previousStatus"`
	NewStatus      models.OrderStatus `json:"newStatus"`
}

type UpdateOrderResult struct {
	OrderID    uint               `json:"orderId"`
	Status     models.OrderStatus `json:"orderStatus"`
	TotalPrice float64            `json:"totalPrice"`
	Items      []OrderItemInput   `json:"orderItems"`
}

// Create reserves stock for every requested item and records the order with a
// one hour expiry. Every write happens in one transaction; a stock shortfall
// on any item aborts the whole order.
func (s *OrderService) Create(ctx context.Context, p models.Principal, items []OrderItemInput, totalPrice float64) (*CreateOrderResult, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", p.UserID)

	if len(items) == 0 || totalPrice <= 0 {
		return nil, validationf("Item pesanan tidak boleh kosong dan harus memiliki total harga")
	}
	if p.Name == "" {
		return nil, validationf("Data pengguna tidak lengkap")
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	byID, err := s.fetchProducts(ctx, items)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		product := byID[it.ProductID]
		if product.Stock < int(it.Quantity) {
			return nil, validationf("Stok tidak mencukupi untuk produk %s", product.Name)
		}
	}

	order := &models.Order{
		UserID:          p.UserID,
		CustomerName:    p.Name,
		CustomerPhone:   p.Phone,
		CustomerAddress: p.Address,
		TotalPrice:      totalPrice,
		Status:          models.StatusPending,
		ExpiredAt:       time.Now().Add(orderTTL),
	}

	err = s.Store.Transact(ctx, func(tx repo.Store) error {
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		for _, it := range items {
			product := byID[it.ProductID]
			item := &models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     product.Price,
			}
			if err := tx.CreateOrderItem(ctx, item); err != nil {
				return err
			}
			ok, err := tx.TakeStock(ctx, it.ProductID, int(it.Quantity))
			if err != nil {
				return err
			}
			if !ok {
				return validationf("Stok tidak mencukupi untuk produk %s", product.Name)
			}
		}
		return nil
	})
	if err != nil {
		l.Warn("order rejected", "error", err)
		return nil, err
	}

	l.Info("order created", "order_id", order.ID, "total", order.TotalPrice)
	return &CreateOrderResult{OrderID: order.ID, ExpiredAt: order.ExpiredAt}, nil
}

// UserOrders returns every order owned by the user with item and product
// summaries joined in.
func (s *OrderService) UserOrders(ctx context.Context, userID uint) ([]OrderSummary, error) {
	orders, err := s.Store.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, notFoundf("Tidak ada pesanan ditemukan untuk pengguna ini")
	}

	summaries := make([]OrderSummary, len(orders))
	for i := range orders {
		summaries[i] = summarize(&orders[i])
	}
	return summaries, nil
}

func (s *OrderService) OrderByID(ctx context.Context, orderID uint) (*OrderSummary, error) {
	order, err := s.Store.OrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundf("Pesanan dengan ID %d tidak ditemukan", orderID)
		}
		return nil, err
	}
	summary := summarize(order)
	return &summary, nil
}

// UpdateStatus moves a PENDING order to DONE or CANCELLED. Both targets are
// terminal, so a second transition is rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, callerID uint, next models.OrderStatus) (*StatusChange, error) {
	order, err := s.guardedOrder(ctx, orderID, callerID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, next) {
		return nil, validationf("Status pesanan tidak valid")
	}

	if err := s.Store.SetOrderStatus(ctx, order.ID, next); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("order status updated",
		"order_id", order.ID, "from", order.Status, "to", next)

	return &StatusChange{
		OrderID:        order.ID,
		PreviousStatus: order.Status,
		NewStatus:      next,
	}, nil
}

// UpdateData adjusts the order's item set. Existing items get their quantity
// changed and only the delta applied to stock; unknown products become new
// items with the product's current price captured. The order total is
// recomputed from the resulting item set.
func (s *OrderService) UpdateData(ctx context.Context, orderID uint, items []OrderItemInput, callerID uint) (*UpdateOrderResult, error) {
	if len(items) == 0 {
		return nil, validationf("Item pesanan tidak boleh kosong")
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	order, err := s.guardedOrder(ctx, orderID, callerID)
	if err != nil {
		return nil, err
	}

	byID, err := s.fetchProducts(ctx, items)
	if err != nil {
		return nil, err
	}

	existing := make(map[uint]*models.OrderItem, len(order.Items))
	for i := range order.Items {
		existing[order.Items[i].ProductID] = &order.Items[i]
	}

	// Validate stock sufficiency for every item before mutating anything.
	// Only the additional quantity has to be available.
	for _, it := range items {
		product := byID[it.ProductID]
		needed := int(it.Quantity)
		if item, ok := existing[it.ProductID]; ok {
			needed = int(it.Quantity) - int(item.Quantity)
		}
		if needed > 0 && product.Stock < needed {
			return nil, validationf("Stok tidak cukup untuk produk %s", product.Name)
		}
	}

	var newTotal float64
	err = s.Store.Transact(ctx, func(tx repo.Store) error {
		for _, it := range items {
			product := byID[it.ProductID]
			if item, ok := existing[it.ProductID]; ok {
				delta := int(it.Quantity) - int(item.Quantity)
				if err := tx.SetOrderItemQuantity(ctx, item.ID, it.Quantity); err != nil {
					return err
				}
				switch {
				case delta > 0:
					ok, err := tx.TakeStock(ctx, it.ProductID, delta)
					if err != nil {
						return err
					}
					if !ok {
						return validationf("Stok tidak cukup untuk produk %s", product.Name)
					}
				case delta < 0:
					if err := tx.ReturnStock(ctx, it.ProductID, -delta); err != nil {
						return err
					}
				}
			} else {
				item := &models.OrderItem{
					OrderID:   order.ID,
					ProductID: it.ProductID,
					Quantity:  it.Quantity,
					Price:     product.Price,
				}
				if err := tx.CreateOrderItem(ctx, item); err != nil {
					return err
				}
				ok, err := tx.TakeStock(ctx, it.ProductID, int(it.Quantity))
				if err != nil {
					return err
				}
				if !ok {
					return validationf("Stok tidak cukup untuk produk %s", product.Name)
				}
			}
		}

		// Total is recomputed from the full resulting item set, including
		// items the request did not touch.
		lines, err := tx.OrderItems(ctx, order.ID)
		if err != nil {
			return err
		}
		newTotal = 0
		for _, line := range lines {
			newTotal += line.Price * float64(line.Quantity)
		}
		return tx.SetOrderTotal(ctx, order.ID, newTotal)
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("order updated", "order_id", order.ID, "total", newTotal)

	return &UpdateOrderResult{
		OrderID:    order.ID,
		Status:     order.Status,
		TotalPrice: newTotal,
		Items:      items,
	}, nil
}

// Delete removes the order and its items, returning every reserved unit to
// the product's stock in the same transaction.
func (s *OrderService) Delete(ctx context.Context, orderID, callerID uint) (uint, error) {
	order, err := s.guardedOrder(ctx, orderID, callerID)
	if err != nil {
		return 0, err
	}

	err = s.Store.Transact(ctx, func(tx repo.Store) error {
		for _, item := range order.Items {
			if err := tx.DeleteOrderItem(ctx, item.ID); err != nil {
				return err
			}
			if err := tx.ReturnStock(ctx, item.ProductID, int(item.Quantity)); err != nil {
				return err
			}
		}
		return tx.DeleteOrder(ctx, order.ID)
	})
	if err != nil {
		return 0, err
	}

	logging.FromContext(ctx).Info("order deleted", "order_id", order.ID)
	return order.ID, nil
}

// guardedOrder loads the order and applies the shared mutation guards:
// existence, ownership, and the terminal-state check.
func (s *OrderService) guardedOrder(ctx context.Context, orderID, callerID uint) (*models.Order, error) {
	order, err := s.Store.OrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundf("Pesanan dengan ID %d tidak ditemukan", orderID)
		}
		return nil, err
	}
	if order.UserID != callerID {
		return nil, forbiddenf("Anda tidak memiliki hak untuk mengubah pesanan ini")
	}
	if order.Status == models.StatusCancelled {
		return nil, conflictf("Pesanan sudah dibatalkan")
	}
	if order.Status == models.StatusDone {
		return nil, conflictf("Pesanan sudah diselesaikan")
	}
	return order, nil
}

// validateItems rejects zero ids, zero quantities, and repeated product ids.
// One OrderItem per product is the shape the update path relies on.
func validateItems(items []OrderItemInput) error {
	seen := make(map[uint]bool, len(items))
	for _, it := range items {
		if it.ProductID == 0 || it.Quantity == 0 {
			return validationf("Beberapa produk tidak valid")
		}
		if seen[it.ProductID] {
			return validationf("Produk dengan ID %d muncul lebih dari sekali", it.ProductID)
		}
		seen[it.ProductID] = true
	}
	return nil
}

// fetchProducts resolves every referenced product or fails with the first
// unresolved id.
func (s *OrderService) fetchProducts(ctx context.Context, items []OrderItemInput) (map[uint]*models.Product, error) {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.Store.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, it := range items {
		if _, ok := byID[it.ProductID]; !ok {
			return nil, validationf("Produk dengan ID %d tidak ditemukan", it.ProductID)
		}
	}
	return byID, nil
}

// Line totals use the price captured on the item, not the product's current
// price, so old orders are unaffected by later price changes.
func summarize(order *models.Order) OrderSummary {
	lines := make([]OrderLine, len(order.Items))
	for i, item := range order.Items {
		lines[i] = OrderLine{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			ProductName:  item.Product.Name,
			ProductPrice: item.Price,
			TotalPrice:   item.Price * float64(item.Quantity),
		}
	}
	return OrderSummary{
		ID:           order.ID,
		TotalPrice:   order.TotalPrice,
		Status:       order.Status,
		CustomerName: order.CustomerName,
		ExpiredAt:    order.ExpiredAt,
		Items:        lines,
	}
}
