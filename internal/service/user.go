package service

import (
	"context"
	"errors"

	"github.com/satriadjati/goshop/internal/hash"
	"github.com/satriadjati/goshop/internal/logging"
	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/repo"
)

type UserService struct {
	Store repo.Store
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phoneNumber"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// Register creates a user with a bcrypt-hashed password. The plaintext is
// never stored and never returned.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.register")

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, validationf("Nama, email, dan password harus diisi")
	}
	if len(in.Password) < 6 {
		return nil, validationf("Password minimal 6 karakter")
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, validationf("Role tidak valid")
	}

	if _, err := s.Store.UserByEmail(ctx, in.Email); err == nil {
		return nil, validationf("Pengguna dengan email %q sudah terdaftar", in.Email)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("hash error", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         role,
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	l.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}
