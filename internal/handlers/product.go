package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/satriadjati/goshop/internal/mykafka"
	"github.com/satriadjati/goshop/internal/service"
	"github.com/satriadjati/goshop/internal/service/search"
)

type ProductHandler struct {
	Products *service.ProductService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func (h *ProductHandler) publish(c echo.Context, key string, event map[string]interface{}) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicProductEvents, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Payload tidak valid"})
	}

	product, err := h.Products.Create(c.Request().Context(), req)
	if err != nil {
		return ErrorResponse(c, err)
	}

	h.publish(c, fmt.Sprint(product.ID), map[string]interface{}{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	if h.ES != nil {
		if err := search.IndexProduct(c.Request().Context(), h.ES, h.ESIndex, product); err != nil {
			c.Logger().Errorf("ES index error: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"status":  "success",
		"message": "Produk berhasil dibuat",
		"data":    product,
	})
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.Products.List(c.Request().Context())
	if err != nil {
		return ErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Daftar produk berhasil diambil",
		"data":    products,
	})
}

// SearchProduct looks a single product up by id from the request body.
func (h *ProductHandler) SearchProduct(c echo.Context) error {
	var req struct {
		ProductID uint `json:"productId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: "Payload tidak valid"})
	}

	product, err := h.Products.ByID(c.Request().Context(), req.ProductID)
	if err != nil {
		return ErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Produk berhasil diambil",
		"data":    product,
	})
}
