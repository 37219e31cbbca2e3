package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/mykafka"
	"github.com/satriadjati/goshop/internal/service"
)

type OrderHandler struct {
	Orders   *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicOrderEvents, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func orderID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("ID pesanan tidak valid")
	}
	return uint(id), nil
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Status: "error", Message: "Token tidak valid"})
	}

	var req struct {
		OrderItems []service.OrderItemInput `json:"orderItems"`
		TotalPrice float64                  `json:"totalPrice"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Payload tidak valid"})
	}

	result, err := h.Orders.Create(c.Request().Context(), p, req.OrderItems, req.TotalPrice)
	if err != nil {
		return ErrorResponse(c, err)
	}

	h.publish(c, fmt.Sprint(result.OrderID), map[string]interface{}{
		"type":    "order_created",
		"orderId": result.OrderID,
		"userId":  p.UserID,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"status":      "success",
		"message":     "Pesanan berhasil dibuat",
		"orderId":     result.OrderID,
		"expiredTime": result.ExpiredAt,
	})
}

func (h *OrderHandler) GetUserOrders(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Status: "error", Message: "Token tidak valid"})
	}

	orders, err := h.Orders.UserOrders(c.Request().Context(), p.UserID)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Pesanan berhasil diambil",
		"data":    orders,
	})
}

func (h *OrderHandler) GetOrderByID(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	order, err := h.Orders.OrderByID(c.Request().Context(), id)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Pesanan berhasil diambil",
		"data":    order,
	})
}

// PayOrder marks a pending order as DONE.
func (h *OrderHandler) PayOrder(c echo.Context) error {
	return h.updateStatus(c, models.StatusDone)
}

// CancelOrder marks a pending order as CANCELLED.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	return h.updateStatus(c, models.StatusCancelled)
}

func (h *OrderHandler) updateStatus(c echo.Context, next models.OrderStatus) error {
	p, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Status: "error", Message: "Token tidak valid"})
	}
	id, err := orderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	change, err := h.Orders.UpdateStatus(c.Request().Context(), id, p.UserID, next)
	if err != nil {
		return ErrorResponse(c, err)
	}

	h.publish(c, fmt.Sprint(change.OrderID), map[string]interface{}{
		"type":    "order_status_updated",
		"orderId": change.OrderID,
		"from":    change.PreviousStatus,
		"to":      change.NewStatus,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Status pesanan berhasil diperbarui",
		"data":    change,
	})
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Status: "error", Message: "Token tidak valid"})
	}
	id, err := orderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	// totalPrice in the payload is accepted but ignored: the service
	// recomputes it from the resulting item set.
	var req struct {
		OrderItems []service.OrderItemInput `json:"orderItems"`
		TotalPrice float64                  `json:"totalPrice"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Payload tidak valid"})
	}

	result, err := h.Orders.UpdateData(c.Request().Context(), id, req.OrderItems, p.UserID)
	if err != nil {
		return ErrorResponse(c, err)
	}

	h.publish(c, fmt.Sprint(result.OrderID), map[string]interface{}{
		"type":       "order_updated",
		"orderId":    result.OrderID,
		"totalPrice": result.TotalPrice,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"message":     "Pesanan berhasil diperbarui",
		"orderId":     result.OrderID,
		"orderStatus": result.Status,
		"totalPrice":  result.TotalPrice,
		"orderItems":  result.Items,
	})
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	p, ok := principalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, Response{Status: "error", Message: "Token tidak valid"})
	}
	id, err := orderID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	deletedID, err := h.Orders.Delete(c.Request().Context(), id, p.UserID)
	if err != nil {
		return ErrorResponse(c, err)
	}

	h.publish(c, fmt.Sprint(deletedID), map[string]interface{}{
		"type":    "order_deleted",
		"orderId": deletedID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Pesanan berhasil dihapus",
		"orderId": deletedID,
	})
}
