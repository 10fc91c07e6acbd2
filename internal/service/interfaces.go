package service

import (
	"context"

	"github.com/kashmiricraft/treasures-api/internal/domain"
)

type ProductServiceInterface interface {
	Create(ctx context.Context, form CreateProductForm) (*domain.Product, error)
	Update(ctx context.Context, id string, form UpdateProductForm) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, category string) ([]domain.Product, error)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
