package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"product-catalog/internal/domain"
	"product-catalog/internal/filter"
	"product-catalog/internal/repository"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const (
	// Attempts after the first when a concurrent writer creates the same category name
	getOrCreateRetries = 3
	getOrCreateBackoff = 20 * time.Millisecond
)

// CategoryService defines the category directory operations
type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*domain.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	GetProductsByCategoryName(ctx context.Context, name string) ([]*domain.Product, error)
	GetProductsByCategoryIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error)

	// GetOrCreateCategory resolves ref by exact name, creating the category when
	// it does not exist. It returns nil, nil when ref or its name is absent.
	GetOrCreateCategory(ctx context.Context, ref *domain.CategoryRef) (*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// GetAllCategories returns every category. An empty catalog is reported as ErrCategoryNotFound.
func (s *categoryService) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories found", domain.ErrCategoryNotFound)
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domain.CategoryNotFound("with id " + id.String())
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategoryByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domain.CategoryNotFound("with name " + name)
		}
		return nil, err
	}
	return category, nil
}

// CreateCategory persists a new category, rejecting a name that is already taken
func (s *categoryService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidCategory)
	}

	_, err := s.categoryRepo.FindByName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("%w: category with name %s already exists", domain.ErrCategoryAlreadyExists, name)
	}
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}

	category := newCategory(name, description)
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, fmt.Errorf("%w: category with name %s already exists", domain.ErrCategoryAlreadyExists, name)
		}
		return nil, err
	}

	return category, nil
}

// GetProductsByCategoryName returns the live products of the named category; an empty list is valid
func (s *categoryService) GetProductsByCategoryName(ctx context.Context, name string) ([]*domain.Product, error) {
	category, err := s.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return s.productRepo.List(ctx, filter.And(filter.WithCategoryID(&category.ID)))
}

// GetProductsByCategoryIDs returns the live products of every category in ids
func (s *categoryService) GetProductsByCategoryIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	categories, err := s.categoryRepo.FindAllByIDIn(ctx, ids)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories found for the provided ids", domain.ErrCategoryNotFound)
	}

	found := make([]uuid.UUID, len(categories))
	for i, category := range categories {
		found[i] = category.ID
	}

	return s.productRepo.List(ctx, filter.And(filter.WithCategoryIDs(found)))
}

// GetOrCreateCategory never rewrites an existing category: fields of ref other
// than Name only apply when a new category is created. A unique-name conflict
// from a concurrent creator is retried as a fresh lookup.
func (s *categoryService) GetOrCreateCategory(ctx context.Context, ref *domain.CategoryRef) (*domain.Category, error) {
	if ref == nil {
		return nil, nil
	}

	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return nil, nil
	}

	var category *domain.Category
	backoff := retry.WithMaxRetries(getOrCreateRetries, retry.NewConstant(getOrCreateBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		existing, err := s.categoryRepo.FindByName(ctx, name)
		if err == nil {
			category = existing
			return nil
		}
		if !errors.Is(err, repository.ErrCategoryNotFound) {
			return err
		}

		created := newCategory(name, ref.Description)
		if err := s.categoryRepo.Create(ctx, created); err != nil {
			if errors.Is(err, repository.ErrCategoryAlreadyExists) {
				return retry.RetryableError(err)
			}
			return err
		}

		category = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category %q: %w", name, err)
	}

	return category, nil
}

func newCategory(name, description string) *domain.Category {
	now := time.Now().UTC()
	return &domain.Category{
		ID:             uuid.New(),
		Name:           name,
		Description:    description,
		CreatedAt:      now,
		LastModifiedAt: now,
	}
}
