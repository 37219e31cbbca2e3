package auth_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/satriadjati/goshop/internal/handlers"
	"github.com/satriadjati/goshop/internal/hash"
	authmw "github.com/satriadjati/goshop/internal/middleware/auth"
	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/repo"
	"github.com/satriadjati/goshop/internal/service"
)

func newEnv(t *testing.T, ttl time.Duration) (*echo.Echo, echo.HandlerFunc, *service.AuthService, *repo.GormStore) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store := repo.NewGormStore(db)
	auth := &service.AuthService{Store: store, JWTSecret: []byte("test-secret"), TokenTTL: ttl}

	e := echo.New()
	protected := authmw.RequireLogin(auth)(func(c echo.Context) error {
		p, _ := c.Get(handlers.PrincipalKey).(models.Principal)
		return c.JSON(http.StatusOK, echo.Map{"userId": p.UserID, "email": p.Email})
	})
	return e, protected, auth, store
}

func seedLogin(t *testing.T, auth *service.AuthService, store *repo.GormStore) string {
	t.Helper()
	pwHash, err := hash.HashPassword("rahasia123")
	require.NoError(t, err)
	user := &models.User{Name: "Budi", Email: "budi@example.com", PasswordHash: pwHash, Role: models.RoleHelper}
	require.NoError(t, store.DB.Create(user).Error)

	token, err := auth.Login(t.Context(), "budi@example.com", "rahasia123")
	require.NoError(t, err)
	return token
}

func doRequest(e *echo.Echo, h echo.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handlers.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}

func TestRequireLoginOK(t *testing.T) {
	e, protected, auth, store := newEnv(t, 0)
	token := seedLogin(t, auth, store)

	rec := doRequest(e, protected, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "budi@example.com", resp.Email)
}

func TestRequireLoginMissingHeader(t *testing.T) {
	e, protected, _, _ := newEnv(t, 0)

	rec := doRequest(e, protected, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Header Authorization hilang atau format tidak valid", message(t, rec))
}

func TestRequireLoginMalformedHeader(t *testing.T) {
	e, protected, auth, store := newEnv(t, 0)
	token := seedLogin(t, auth, store)

	rec := doRequest(e, protected, "Token "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Header Authorization hilang atau format tidak valid", message(t, rec))
}

func TestRequireLoginExpiredToken(t *testing.T) {
	e, protected, auth, store := newEnv(t, -time.Minute)
	token := seedLogin(t, auth, store)

	rec := doRequest(e, protected, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Token telah kedaluwarsa", message(t, rec))
}

func TestRequireLoginMalformedToken(t *testing.T) {
	e, protected, _, _ := newEnv(t, 0)

	rec := doRequest(e, protected, "Bearer abc.def.ghi")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Token tidak valid", message(t, rec))
}

func TestRequireLoginDeletedUser(t *testing.T) {
	e, protected, auth, store := newEnv(t, 0)
	token := seedLogin(t, auth, store)

	require.NoError(t, store.DB.Where("email = ?", "budi@example.com").Delete(&models.User{}).Error)

	rec := doRequest(e, protected, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Pengguna tidak ditemukan", message(t, rec))
}
