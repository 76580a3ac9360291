package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"product-catalog/internal/domain"
	"product-catalog/internal/filter"
	"product-catalog/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing
type mockProductRepository struct {
	mu        sync.Mutex
	products  map[uuid.UUID]*domain.Product
	updateErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	if p.Price != nil {
		price := *p.Price
		c.Price = &price
	}
	return &c
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = cloneProduct(product)
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = cloneProduct(product)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (m *mockProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	return m.List(ctx, filter.And())
}

func (m *mockProductRepository) List(ctx context.Context, f filter.Filter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.match(f.And(filter.NotDeleted())), nil
}

func (m *mockProductRepository) Find(ctx context.Context, f filter.Filter, page repository.PageRequest) (*domain.Page[*domain.Product], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := m.match(f.And(filter.NotDeleted()))
	sort.SliceStable(matched, func(i, j int) bool {
		c := compareBy(page.SortBy, matched[i], matched[j])
		if c == 0 {
			c = strings.Compare(matched[i].ID.String(), matched[j].ID.String())
		}
		if page.Direction == domain.SortAsc {
			return c < 0
		}
		return c > 0
	})

	total := int64(len(matched))
	start := min(page.Page*page.Size, len(matched))
	end := min(start+page.Size, len(matched))

	return domain.NewPage(matched[start:end], page.Page, page.Size, total), nil
}

func (m *mockProductRepository) match(f filter.Filter) []*domain.Product {
	var out []*domain.Product
	for _, p := range m.products {
		if f.Matches(p) {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

func compareBy(field filter.Field, a, b *domain.Product) int {
	switch field {
	case filter.FieldName:
		return strings.Compare(a.Name, b.Name)
	case filter.FieldPriceAmount:
		return a.Price.Amount.Cmp(b.Price.Amount)
	case filter.FieldLastModified:
		return a.LastModifiedAt.Compare(b.LastModifiedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

type mockCategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*domain.Category
	// conflicts is the number of upcoming Create calls that report a unique-name clash
	conflicts int
	creates   int
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[uuid.UUID]*domain.Category),
	}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.conflicts > 0 {
		m.conflicts--
		return repository.ErrCategoryAlreadyExists
	}
	for _, c := range m.categories {
		if c.Name == category.Name {
			return repository.ErrCategoryAlreadyExists
		}
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, exists := m.categories[id]
	if !exists {
		return nil, repository.ErrCategoryNotFound
	}
	return c, nil
}

func (m *mockCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindAllByIDIn(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Category
	for _, id := range ids {
		if c, exists := m.categories[id]; exists {
			out = append(out, c)
		}
	}
	return out, nil
}
