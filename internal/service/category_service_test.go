package service

import (
	"context"
	"testing"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty_GetOrCreateYieldsOneCategoryPerName(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("repeated get-or-create of a name returns the same category", prop.ForAll(
		func(picks []int) bool {
			_, categories, _, categoryRepo := newTestServices()
			ctx := context.Background()

			seen := make(map[string]uuid.UUID)
			names := []string{"Phones", "phones", "Laptops", "Audio"}
			for _, pick := range picks {
				name := names[pick]
				category, err := categories.GetOrCreateCategory(ctx, &domain.CategoryRef{Name: name})
				if err != nil {
					t.Logf("FAIL: get-or-create %q: %v", name, err)
					return false
				}
				if id, ok := seen[name]; ok && id != category.ID {
					t.Logf("FAIL: name %q resolved to two categories", name)
					return false
				}
				seen[name] = category.ID
			}

			return len(categoryRepo.categories) == len(seen)
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestGetOrCreateCategory_AbsentReference(t *testing.T) {
	_, categories, _, categoryRepo := newTestServices()
	ctx := context.Background()

	category, err := categories.GetOrCreateCategory(ctx, nil)
	assert.NoError(t, err)
	assert.Nil(t, category)

	category, err = categories.GetOrCreateCategory(ctx, &domain.CategoryRef{Name: ""})
	assert.NoError(t, err)
	assert.Nil(t, category)
	assert.Zero(t, categoryRepo.creates)
}

func TestGetOrCreateCategory_RetriesOnConflict(t *testing.T) {
	_, categories, _, categoryRepo := newTestServices()
	ctx := context.Background()

	categoryRepo.conflicts = 2

	category, err := categories.GetOrCreateCategory(ctx, &domain.CategoryRef{Name: "Phones"})
	require.NoError(t, err)
	assert.Equal(t, "Phones", category.Name)
	assert.Equal(t, 3, categoryRepo.creates)
}

func TestGetOrCreateCategory_ExhaustedRetriesAreNotAConflict(t *testing.T) {
	_, categories, _, categoryRepo := newTestServices()
	ctx := context.Background()

	categoryRepo.conflicts = 100

	_, err := categories.GetOrCreateCategory(ctx, &domain.CategoryRef{Name: "Phones"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCategoryAlreadyExists)
	assert.ErrorIs(t, err, repository.ErrCategoryAlreadyExists)
	assert.Equal(t, getOrCreateRetries+1, categoryRepo.creates)
}

func TestCreateCategory(t *testing.T) {
	_, categories, _, _ := newTestServices()
	ctx := context.Background()

	created, err := categories.CreateCategory(ctx, "Phones", "Mobile phones")
	require.NoError(t, err)
	assert.Equal(t, "Mobile phones", created.Description)

	_, err = categories.CreateCategory(ctx, "Phones", "again")
	assert.ErrorIs(t, err, domain.ErrCategoryAlreadyExists)

	_, err = categories.CreateCategory(ctx, "  ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestGetAllCategories_EmptyIsNotFound(t *testing.T) {
	_, categories, _, _ := newTestServices()
	ctx := context.Background()

	_, err := categories.GetAllCategories(ctx)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = categories.CreateCategory(ctx, "Phones", "")
	require.NoError(t, err)

	all, err := categories.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetCategory_NotFound(t *testing.T) {
	_, categories, _, _ := newTestServices()
	ctx := context.Background()

	_, err := categories.GetCategoryByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	_, err = categories.GetCategoryByName(ctx, "Nope")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestGetProductsByCategory(t *testing.T) {
	products, categories, _, _ := newTestServices()
	ctx := context.Background()

	phone, err := products.CreateProduct(ctx, phoneInput("iPhone 14", "899.00", domain.CurrencyUSD, "Phones"))
	require.NoError(t, err)
	gone, err := products.CreateProduct(ctx, phoneInput("iPhone 8", "199.00", domain.CurrencyUSD, "Phones"))
	require.NoError(t, err)
	laptop, err := products.CreateProduct(ctx, phoneInput("ThinkPad", "1299.00", domain.CurrencyUSD, "Laptops"))
	require.NoError(t, err)
	_, err = products.DeleteProduct(ctx, gone.ID)
	require.NoError(t, err)

	byName, err := categories.GetProductsByCategoryName(ctx, "Phones")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, phone.ID, byName[0].ID)

	_, err = categories.GetProductsByCategoryName(ctx, "Tablets")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	byIDs, err := categories.GetProductsByCategoryIDs(ctx, []uuid.UUID{phone.Category.ID, laptop.Category.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	_, err = categories.GetProductsByCategoryIDs(ctx, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestGetProductsByCategoryName_EmptyCategoryIsValid(t *testing.T) {
	_, categories, _, _ := newTestServices()
	ctx := context.Background()

	_, err := categories.CreateCategory(ctx, "Tablets", "")
	require.NoError(t, err)

	list, err := categories.GetProductsByCategoryName(ctx, "Tablets")
	require.NoError(t, err)
	assert.Empty(t, list)
}
