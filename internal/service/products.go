package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/repository/postgres"
)

// ProductService реализует управление каталогом товаров
type ProductService struct {
	productRepo domain.ProductRepository
}

// NewProductService создает новый ProductService
func NewProductService(productRepo domain.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// CreateProduct создает товар (для админки)
func (s *ProductService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("product service: failed to create product: %w", err)
	}

	return created, nil
}

// GetProduct получает товар по ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("product service: failed to get product %d: %w", id, err)
	}

	return product, nil
}

// ListProducts получает товары; для пользователей — только активные
func (s *ProductService) ListProducts(ctx context.Context, activeOnly bool) ([]*domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("product service: failed to list products: %w", err)
	}

	return products, nil
}

// UpdateProduct обновляет товар (для админки)
func (s *ProductService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, postgres.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("product service: failed to update product %d: %w", product.ID, err)
	}

	return product, nil
}

// validateProduct проверяет поля товара
func validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product service: %w: empty name", ErrInvalidInput)
	}
	if product.PointCost <= 0 {
		return fmt.Errorf("product service: %w: non-positive point cost", ErrInvalidInput)
	}
	if product.Stock < 0 {
		return fmt.Errorf("product service: %w: negative stock", ErrInvalidInput)
	}
	return nil
}
