package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/satriadjati/goshop/internal/hash"
	"github.com/satriadjati/goshop/internal/logging"
	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/repo"
)

const DefaultTokenTTL = 24 * time.Hour

type AuthService struct {
	Store     repo.Store
	JWTSecret []byte
	TokenTTL  time.Duration
}

// Login verifies the credentials and issues a signed HS256 token binding the
// user's id, email and role. Unknown email and wrong password collapse into
// the same message so account existence does not leak.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return "", validationf("Email dan password harus diisi")
	}

	user, err := s.Store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login failed", "reason", "unknown email")
			return "", unauthorizedf("Email atau password salah")
		}
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "password mismatch", "user_id", user.ID)
		return "", unauthorizedf("Email atau password salah")
	}

	exp := time.Now().Add(s.tokenTTL())
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", err
	}

	l.Info("login ok", "user_id", user.ID)
	return signed, nil
}

// Authenticate validates a bearer token and resolves it to a Principal.
// Each failure mode keeps its own message; all map to 401.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*models.Principal, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, unauthorizedf("Token telah kedaluwarsa")
		}
		return nil, unauthorizedf("Token tidak valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, unauthorizedf("Token tidak valid")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, unauthorizedf("Token tidak valid")
	}

	// The subject must still exist; tokens for deleted users are rejected.
	user, err := s.Store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logging.FromContext(ctx).Warn("token subject missing", "email", email)
			return nil, unauthorizedf("Pengguna tidak ditemukan")
		}
		return nil, err
	}

	return &models.Principal{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		Role:    user.Role,
	}, nil
}

func (s *AuthService) tokenTTL() time.Duration {
	if s.TokenTTL != 0 {
		return s.TokenTTL
	}
	return DefaultTokenTTL
}
