package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ProductRepository реализует domain.ProductRepository
type ProductRepository struct {
	db DBTX
}

// NewProductRepository создает новый ProductRepository
func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// CreateProduct создает новый товар
func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	created := &domain.Product{}

	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, image_url, point_cost, stock, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, COALESCE(image_url, ''), point_cost, stock, active, created_at`,
		product.Name, nullableString(product.ImageURL), product.PointCost, product.Stock, product.Active,
	).Scan(&created.ID, &created.Name, &created.ImageURL, &created.PointCost, &created.Stock, &created.Active, &created.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to create product %q: %w", product.Name, err)
	}

	return created, nil
}

// GetProductByID получает товар по ID
func (r *ProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	product := &domain.Product{}

	err := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(image_url, ''), point_cost, stock, active, created_at
		 FROM products
		 WHERE id = $1`,
		id,
	).Scan(&product.ID, &product.Name, &product.ImageURL, &product.PointCost, &product.Stock, &product.Active, &product.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("repository: failed to get product %d: %w", id, err)
	}

	return product, nil
}

// ListProducts получает товары; activeOnly ограничивает выборку активными
func (r *ProductRepository) ListProducts(ctx context.Context, activeOnly bool) ([]*domain.Product, error) {
	query := `SELECT id, name, COALESCE(image_url, ''), point_cost, stock, active, created_at
		 FROM products ORDER BY created_at DESC`
	if activeOnly {
		query = `SELECT id, name, COALESCE(image_url, ''), point_cost, stock, active, created_at
		 FROM products WHERE active ORDER BY created_at DESC`
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(&product.ID, &product.Name, &product.ImageURL, &product.PointCost, &product.Stock, &product.Active, &product.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating products: %w", err)
	}

	return products, nil
}

// UpdateProduct обновляет товар
func (r *ProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products
		 SET name = $2, image_url = $3, point_cost = $4, stock = $5, active = $6
		 WHERE id = $1`,
		product.ID, product.Name, nullableString(product.ImageURL), product.PointCost, product.Stock, product.Active,
	)

	if err != nil {
		return fmt.Errorf("repository: failed to update product %d: %w", product.ID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// DecrementStock атомарно уменьшает остаток на единицу.
// Условие stock > 0 проверяется самим UPDATE — параллельные заказы
// не могут увести остаток в минус
func (r *ProductRepository) DecrementStock(ctx context.Context, productID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock - 1 WHERE id = $1 AND stock > 0`,
		productID,
	)

	if err != nil {
		return false, fmt.Errorf("repository: failed to decrement stock for product %d: %w", productID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// IncrementStock возвращает единицу остатка (при отмене заказа)
func (r *ProductRepository) IncrementStock(ctx context.Context, productID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock + 1 WHERE id = $1`,
		productID,
	)

	if err != nil {
		return fmt.Errorf("repository: failed to increment stock for product %d: %w", productID, err)
	}

	return nil
}

// CountProducts считает общее количество товаров
func (r *ProductRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count products: %w", err)
	}

	return count, nil
}

// nullableString возвращает nil для пустой строки (для nullable колонок)
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
