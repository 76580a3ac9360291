package service

import (
	"context"
	"strings"

	"product-catalog/internal/domain"
	"product-catalog/internal/filter"
	"product-catalog/internal/repository"
)

const (
	MaxPageSize    = 100
	MaxSuggestions = 10
)

// sortFields maps the public sort keys onto filter fields
var sortFields = map[string]filter.Field{
	"name":           filter.FieldName,
	"price":          filter.FieldPriceAmount,
	"createdAt":      filter.FieldCreatedAt,
	"lastModifiedAt": filter.FieldLastModified,
}

// sortKeys lists the accepted sort keys in the order they are reported
var sortKeys = []string{"name", "price", "createdAt", "lastModifiedAt"}

// SearchService defines the product search operations
type SearchService interface {
	SearchProducts(ctx context.Context, q domain.SearchQuery) (*domain.Page[*domain.Product], error)
	GetSuggestions(ctx context.Context, prefix string, limit int) ([]*domain.Product, error)
}

type searchService struct {
	productRepo repository.ProductRepository
}

// NewSearchService creates a new instance of SearchService
func NewSearchService(productRepo repository.ProductRepository) SearchService {
	return &searchService{productRepo: productRepo}
}

// SearchProducts validates q, composes its constraints into one conjunctive
// filter over live products and returns the requested page.
func (s *searchService) SearchProducts(ctx context.Context, q domain.SearchQuery) (*domain.Page[*domain.Product], error) {
	sortField, err := validateSearch(q)
	if err != nil {
		return nil, err
	}

	f := filter.And(
		filter.NotDeleted(),
		filter.WithQuery(q.Query),
		filter.WithMinPrice(q.MinPrice),
		filter.WithMaxPrice(q.MaxPrice),
		filter.WithCurrency(q.Currency),
		filter.WithCategoryID(q.CategoryID),
		filter.WithCategoryName(q.CategoryName),
		filter.WithCreatedAfter(q.CreatedAfter),
		filter.WithCreatedBefore(q.CreatedBefore),
	)

	dir := q.SortDir
	if dir != domain.SortAsc {
		dir = domain.SortDesc
	}

	return s.productRepo.Find(ctx, f, repository.PageRequest{
		Page:      q.Page,
		Size:      q.Size,
		SortBy:    sortField,
		Direction: dir,
	})
}

// GetSuggestions returns up to limit live products whose name starts with
// prefix, ordered by name. limit is clamped to [1, MaxSuggestions].
func (s *searchService) GetSuggestions(ctx context.Context, prefix string, limit int) ([]*domain.Product, error) {
	limit = min(max(limit, 1), MaxSuggestions)

	f := filter.And(filter.NotDeleted(), filter.WithNamePrefix(prefix))

	page, err := s.productRepo.Find(ctx, f, repository.PageRequest{
		Page:      0,
		Size:      limit,
		SortBy:    filter.FieldName,
		Direction: domain.SortAsc,
	})
	if err != nil {
		return nil, err
	}

	return page.Items, nil
}

// validateSearch checks q in a fixed order and returns the field to sort on
func validateSearch(q domain.SearchQuery) (filter.Field, error) {
	if q.MinPrice != nil && q.MinPrice.IsNegative() {
		return "", domain.NewInvalidSearchParameter("minPrice cannot be negative")
	}
	if q.MaxPrice != nil && q.MaxPrice.IsNegative() {
		return "", domain.NewInvalidSearchParameter("maxPrice cannot be negative")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return "", domain.NewInvalidSearchParameter("minPrice cannot be greater than maxPrice")
	}
	if q.CreatedAfter != nil && q.CreatedBefore != nil && q.CreatedAfter.After(*q.CreatedBefore) {
		return "", domain.NewInvalidSearchParameter("createdAfter cannot be after createdBefore")
	}
	if q.Size > MaxPageSize {
		return "", domain.NewInvalidSearchParameter("Page size cannot exceed %d", MaxPageSize)
	}
	if q.Page < 0 {
		return "", domain.NewInvalidSearchParameter("Page index cannot be negative")
	}
	if q.Size < 1 {
		return "", domain.NewInvalidSearchParameter("Page size must be at least 1")
	}

	field, ok := sortFields[q.SortBy]
	if !ok {
		return "", domain.NewInvalidSearchParameter(
			"Invalid sort field: %s. Allowed fields: %s", q.SortBy, strings.Join(sortKeys, ", "))
	}

	return field, nil
}
