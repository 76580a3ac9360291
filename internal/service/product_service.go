package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService defines the catalog mutation and lookup operations
type ProductService interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error)
	ReplaceProduct(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	categories  CategoryService
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository, categories CategoryService) ProductService {
	return &productService{
		productRepo: productRepo,
		categories:  categories,
	}
}

// CreateProduct resolves the category by name and persists a new live product
func (s *productService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	category, err := s.categories.GetOrCreateCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	price := *in.Price
	product := &domain.Product{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		Price:          &price,
		Category:       category,
		CreatedAt:      now,
		LastModifiedAt: now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct merges the non-nil fields of patch into the stored product.
// Price sub-fields merge independently. The category changes only when the
// patch names one.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, patch domain.ProductPatch) (*domain.Product, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	product, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.Price != nil {
		product.Price = mergePrice(product.Price, patch.Price)
	}

	category, err := s.categories.GetOrCreateCategory(ctx, patch.Category)
	if err != nil {
		return nil, err
	}
	if category != nil {
		product.Category = category
	}

	product.LastModifiedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ReplaceProduct overwrites every writable field of the stored product
func (s *productService) ReplaceProduct(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	product, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetOrCreateCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	price := *in.Price
	product.Name = strings.TrimSpace(in.Name)
	product.Description = in.Description
	product.ImageURL = in.ImageURL
	product.Price = &price
	product.Category = category
	product.LastModifiedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct flags the product as deleted. A failure to save the flag is
// reported as *domain.ProductNotDeletedError carrying the storage cause.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsDeleted = true
	product.LastModifiedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, &domain.ProductNotDeletedError{ID: id, Err: err}
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.findLive(ctx, id)
}

func (s *productService) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.FindAll(ctx)
}

// findLive loads a product, treating a soft-deleted row as absent
func (s *productService) findLive(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domain.ProductNotFound(id)
		}
		return nil, err
	}

	if product.IsDeleted {
		return nil, domain.ProductNotFound(id)
	}

	return product, nil
}

func mergePrice(current *domain.Price, patch *domain.PricePatch) *domain.Price {
	merged := domain.Price{}
	if current != nil {
		merged = *current
	}
	if patch.Amount != nil {
		merged.Amount = *patch.Amount
	}
	if patch.Currency != nil {
		merged.Currency = *patch.Currency
	}
	return &merged
}

func validateInput(in domain.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	}
	if in.Price == nil {
		return fmt.Errorf("%w: price is required", domain.ErrInvalidProduct)
	}
	if err := validatePrice(&in.Price.Amount, &in.Price.Currency); err != nil {
		return err
	}
	if in.Category == nil || strings.TrimSpace(in.Category.Name) == "" {
		return fmt.Errorf("%w: category name is required", domain.ErrInvalidProduct)
	}
	return nil
}

func validatePatch(patch domain.ProductPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidProduct)
	}
	if patch.Price != nil {
		return validatePrice(patch.Price.Amount, patch.Price.Currency)
	}
	return nil
}

func validatePrice(amount *decimal.Decimal, currency *domain.Currency) error {
	if amount != nil && amount.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrInvalidProduct)
	}
	if currency != nil && !currency.Valid() {
		return fmt.Errorf("%w: unsupported currency %q", domain.ErrInvalidProduct, *currency)
	}
	return nil
}
