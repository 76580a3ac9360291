package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"product-catalog/internal/domain"
	"product-catalog/internal/filter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// PageRequest selects one page of a sorted product query. Page is zero-indexed.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    filter.Field
	Direction domain.SortDirection
}

// ProductRepository defines the interface for product data access.
// Every read except FindByID excludes soft-deleted rows.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	List(ctx context.Context, f filter.Filter) ([]*domain.Product, error)
	Find(ctx context.Context, f filter.Filter, page PageRequest) (*domain.Page[*domain.Product], error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const selectProducts = `
	SELECT p.id, p.name, COALESCE(p.description, ''), COALESCE(p.image_url, ''),
	       p.price_amount, p.price_currency,
	       c.id, c.name, COALESCE(c.description, ''), c.created_at, c.last_modified_at,
	       p.created_at, p.last_modified_at, p.is_deleted
	FROM products p
	JOIN categories c ON c.id = p.category_id
`

// Create inserts a new product. The product must carry a price and a persisted category.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.Price == nil || product.Category == nil {
		return fmt.Errorf("failed to create product: price and category are required")
	}

	query := `
		INSERT INTO products (id, name, description, image_url, price_amount, price_currency,
		                      category_id, created_at, last_modified_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.ImageURL,
		product.Price.Amount,
		string(product.Price.Currency),
		product.Category.ID,
		product.CreatedAt,
		product.LastModifiedAt,
		product.IsDeleted,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update overwrites every mutable column of an existing product, including the deleted flag
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	if product.Price == nil || product.Category == nil {
		return fmt.Errorf("failed to update product: price and category are required")
	}

	query := `
		UPDATE products
		SET name = $2, description = $3, image_url = $4, price_amount = $5, price_currency = $6,
		    category_id = $7, last_modified_at = $8, is_deleted = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.ImageURL,
		product.Price.Amount,
		string(product.Price.Currency),
		product.Category.ID,
		product.LastModifiedAt,
		product.IsDeleted,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by ID whether or not it is soft-deleted
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := selectProducts + ` WHERE p.id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindAll retrieves every product that is not soft-deleted, ordered by name
func (r *productRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return r.List(ctx, nil)
}

// List retrieves every product matching f, ordered by name
func (r *productRepository) List(ctx context.Context, f filter.Filter) ([]*domain.Product, error) {
	whereClause, args, err := buildWhere(visible(f), 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("%s %s ORDER BY p.name ASC, p.id ASC", selectProducts, whereClause)

	return r.query(ctx, query, args...)
}

// Find retrieves one sorted page of products matching f together with the total match count
func (r *productRepository) Find(ctx context.Context, f filter.Filter, page PageRequest) (*domain.Page[*domain.Product], error) {
	whereClause, args, err := buildWhere(visible(f), 1)
	if err != nil {
		return nil, err
	}

	orderBy, err := buildOrderBy(page.SortBy, page.Direction)
	if err != nil {
		return nil, err
	}

	// Count total products
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		%s
	`, whereClause)

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	offset := page.Page * page.Size
	argIndex := len(args) + 1

	query := fmt.Sprintf("%s %s %s LIMIT $%d OFFSET $%d",
		selectProducts, whereClause, orderBy, argIndex, argIndex+1)
	args = append(args, page.Size, offset)

	products, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return domain.NewPage(products, page.Page, page.Size, total), nil
}

// visible is the single place product reads exclude soft-deleted rows
func visible(f filter.Filter) filter.Filter {
	return filter.And(filter.NotDeleted()).And(f...)
}

func (r *productRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product  domain.Product
		category domain.Category
		amount   decimal.Decimal
		currency string
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.ImageURL,
		&amount,
		&currency,
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.LastModifiedAt,
		&product.CreatedAt,
		&product.LastModifiedAt,
		&product.IsDeleted,
	)
	if err != nil {
		return nil, err
	}

	product.Price = &domain.Price{Amount: amount, Currency: domain.Currency(currency)}
	product.Category = &category

	return &product, nil
}
