package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/satriadjati/goshop/internal/mykafka"
	"github.com/satriadjati/goshop/internal/service"
)

type AuthHandler struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, topic, key string, event map[string]interface{}) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Payload tidak valid"})
	}

	user, err := h.Users.Register(c.Request().Context(), req)
	if err != nil {
		return ErrorResponse(c, err)
	}

	h.publish(c, mykafka.TopicUserEvents, fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_registered",
		"userId": user.ID,
		"email":  user.Email,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Pengguna berhasil dibuat",
		"data": echo.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Payload tidak valid"})
	}

	token, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return ErrorResponse(c, err)
	}

	h.publish(c, mykafka.TopicUserEvents, req.Email, map[string]interface{}{
		"type":  "user_logged_in",
		"email": req.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Login berhasil",
		"data":    echo.Map{"token": token},
	})
}
