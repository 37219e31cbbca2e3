package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satriadjati/goshop/internal/handlers"
	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/repo"
	"github.com/satriadjati/goshop/internal/service"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	Store *repo.GormStore
	A     *handlers.AuthHandler
	P     *handlers.ProductHandler
	O     *handlers.OrderHandler
}

func newTestEnv(t *testing.T) *testEnv {
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

	store := repo.NewGormStore(db)
	authSvc := &service.AuthService{Store: store, JWTSecret: []byte("test-secret")}
	return &testEnv{
		T:     t,
		E:     echo.New(),
		Store: store,
		A:     &handlers.AuthHandler{Auth: authSvc, Users: &service.UserService{Store: store}},
		P:     &handlers.ProductHandler{Products: &service.ProductService{Store: store}},
		O:     &handlers.OrderHandler{Orders: &service.OrderService{Store: store}},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedPrincipal(name, email string) models.Principal {
	user := &models.User{Name: name, Email: email, PasswordHash: "x", Role: models.RoleHelper}
	require.NoError(env.T, env.Store.DB.Create(user).Error)
	return models.Principal{UserID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

func (env *testEnv) seedProduct(name string, price float64, stock int) *models.Product {
	product := &models.Product{Name: name, Description: "deskripsi", Price: price, Stock: stock}
	require.NoError(env.T, env.Store.CreateProduct(context.Background(), product))
	return product
}

func TestCreateOrderHandler(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPrincipal("Budi", "budi@example.com")
	product := env.seedProduct("Kopi", 10, 5)

	body := map[string]interface{}{
		"orderItems": []map[string]interface{}{
			{"productId": product.ID, "quantity": 2},
		},
		"totalPrice": 20,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/order", body)
	c.Set(handlers.PrincipalKey, p)

	require.NoError(t, env.O.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		OrderID uint   `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.NotZero(t, resp.OrderID)

	stored, err := env.Store.ProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stored.Stock)
}

func TestCreateOrderHandlerWithoutPrincipal(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/order", map[string]interface{}{})
	require.NoError(t, env.O.CreateOrder(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrderHandlerInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPrincipal("Budi", "budi@example.com")
	product := env.seedProduct("Kopi", 10, 1)

	body := map[string]interface{}{
		"orderItems": []map[string]interface{}{
			{"productId": product.ID, "quantity": 5},
		},
		"totalPrice": 50,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/order", body)
	c.Set(handlers.PrincipalKey, p)

	require.NoError(t, env.O.CreateOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "error", resp.Status)
	require.Contains(t, resp.Message, "Stok tidak mencukupi")
}

// Order detail is readable without authentication, as documented.
func TestGetOrderByIDHandlerPublic(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPrincipal("Budi", "budi@example.com")
	product := env.seedProduct("Kopi", 10, 5)

	orderSvc := &service.OrderService{Store: env.Store}
	created, err := orderSvc.Create(context.Background(), p,
		[]service.OrderItemInput{{ProductID: product.ID, Quantity: 2}}, 20)
	require.NoError(t, err)

	rec, c := env.doJSONRequest(http.MethodGet, "/order/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.OrderID))

	require.NoError(t, env.O.GetOrderByID(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data service.OrderSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, created.OrderID, resp.Data.ID)
	require.Len(t, resp.Data.Items, 1)
	require.Equal(t, "Kopi", resp.Data.Items[0].ProductName)
}

func TestPayOrderHandler(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPrincipal("Budi", "budi@example.com")
	product := env.seedProduct("Kopi", 10, 5)

	orderSvc := &service.OrderService{Store: env.Store}
	created, err := orderSvc.Create(context.Background(), p,
		[]service.OrderItemInput{{ProductID: product.ID, Quantity: 1}}, 10)
	require.NoError(t, err)

	rec, c := env.doJSONRequest(http.MethodPost, "/order/1/pay-now", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.OrderID))
	c.Set(handlers.PrincipalKey, p)

	require.NoError(t, env.O.PayOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data service.StatusChange `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.StatusPending, resp.Data.PreviousStatus)
	require.Equal(t, models.StatusDone, resp.Data.NewStatus)

	// Second pay attempt hits the terminal-state guard.
	rec2, c2 := env.doJSONRequest(http.MethodPost, "/order/1/pay-now", nil)
	c2.SetParamNames("id")
	c2.SetParamValues(fmt.Sprint(created.OrderID))
	c2.Set(handlers.PrincipalKey, p)

	require.NoError(t, env.O.PayOrder(c2))
	require.Equal(t, http.StatusConflict, rec2.Code)
}

func TestDeleteOrderHandler(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPrincipal("Budi", "budi@example.com")
	product := env.seedProduct("Kopi", 10, 5)

	orderSvc := &service.OrderService{Store: env.Store}
	created, err := orderSvc.Create(context.Background(), p,
		[]service.OrderItemInput{{ProductID: product.ID, Quantity: 2}}, 20)
	require.NoError(t, err)

	rec, c := env.doJSONRequest(http.MethodDelete, "/order/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(created.OrderID))
	c.Set(handlers.PrincipalKey, p)

	require.NoError(t, env.O.DeleteOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := env.Store.ProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, 5, stored.Stock)
}

func TestInvalidOrderIDParam(t *testing.T) {
	env := newTestEnv(t)
	p := env.seedPrincipal("Budi", "budi@example.com")

	rec, c := env.doJSONRequest(http.MethodDelete, "/order/abc", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set(handlers.PrincipalKey, p)

	require.NoError(t, env.O.DeleteOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ID pesanan tidak valid", resp.Message)
}
