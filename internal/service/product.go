package service

import (
	"context"
	"errors"

	"github.com/satriadjati/goshop/internal/logging"
	"github.com/satriadjati/goshop/internal/models"
	"github.com/satriadjati/goshop/internal/repo"
)

type ProductService struct {
	Store repo.Store
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if in.Name == "" || in.Description == "" {
		return nil, validationf("Data produk tidak lengkap")
	}
	if in.Price <= 0 {
		return nil, validationf("Harga produk harus lebih dari 0")
	}
	if in.Stock < 0 {
		return nil, validationf("Stok produk tidak boleh negatif")
	}

	if _, err := s.Store.ProductByName(ctx, in.Name); err == nil {
		return nil, validationf("Produk dengan nama %q sudah ada. Gunakan nama lain.", in.Name)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := s.Store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("product created", "product_id", product.ID, "name", product.Name)
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.Store.ListProducts(ctx)
}

func (s *ProductService) ByID(ctx context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, validationf("ID produk tidak valid")
	}
	product, err := s.Store.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFoundf("Produk dengan ID %d tidak ditemukan", id)
		}
		return nil, err
	}
	return product, nil
}
