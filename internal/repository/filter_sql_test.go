package repository

import (
	"testing"
	"time"

	"product-catalog/internal/domain"
	"product-catalog/internal/filter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhere_EmptyFilter(t *testing.T) {
	where, args, err := buildWhere(nil, 1)

	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhere_ComposesConjunction(t *testing.T) {
	min := decimal.RequireFromString("10.50")
	max := decimal.RequireFromString("99.99")
	currency := domain.CurrencyEUR
	categoryID := uuid.New()
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f := filter.And(
		filter.NotDeleted(),
		filter.WithQuery("Phone"),
		filter.WithMinPrice(&min),
		filter.WithMaxPrice(&max),
		filter.WithCurrency(&currency),
		filter.WithCategoryID(&categoryID),
		filter.WithCategoryName("Electronics"),
		filter.WithCreatedAfter(&after),
	)

	where, args, err := buildWhere(f, 1)
	require.NoError(t, err)

	assert.Equal(t, "WHERE p.is_deleted = $1"+
		` AND LOWER(p.name) LIKE $2 ESCAPE '\'`+
		" AND p.price_amount >= $3"+
		" AND p.price_amount <= $4"+
		" AND p.price_currency = $5"+
		" AND p.category_id = $6"+
		" AND LOWER(c.name) = $7"+
		" AND p.created_at >= $8", where)

	assert.Equal(t, []any{
		false,
		"%phone%",
		min,
		max,
		"EUR",
		categoryID.String(),
		"electronics",
		after,
	}, args)
}

func TestBuildWhere_EscapesLikePatterns(t *testing.T) {
	where, args, err := buildWhere(filter.And(filter.WithNamePrefix(`100%_Off\`)), 3)

	require.NoError(t, err)
	assert.Equal(t, `WHERE LOWER(p.name) LIKE $3 ESCAPE '\'`, where)
	assert.Equal(t, []any{`100\%\_off\\%`}, args)
}

func TestBuildWhere_CategoryIDSet(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	where, args, err := buildWhere(filter.And(filter.WithCategoryIDs([]uuid.UUID{a, b})), 1)

	require.NoError(t, err)
	assert.Equal(t, "WHERE p.category_id = ANY($1::uuid[])", where)
	assert.Equal(t, []any{[]string{a.String(), b.String()}}, args)
}

func TestBuildWhere_RejectsUnknownField(t *testing.T) {
	_, _, err := buildWhere(filter.Filter{{Field: "stock", Op: filter.OpEq, Value: 1}}, 1)

	assert.ErrorIs(t, err, ErrUnsupportedFilter)
}

func TestBuildOrderBy(t *testing.T) {
	orderBy, err := buildOrderBy(filter.FieldPriceAmount, domain.SortAsc)
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY p.price_amount ASC, p.id ASC", orderBy)

	orderBy, err = buildOrderBy(filter.FieldCreatedAt, "")
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY p.created_at DESC, p.id DESC", orderBy)

	_, err = buildOrderBy(filter.FieldIsDeleted, domain.SortAsc)
	assert.ErrorIs(t, err, ErrUnsupportedFilter)
}

func TestVisible_AlwaysExcludesDeleted(t *testing.T) {
	f := visible(nil)

	require.Len(t, f, 1)
	assert.Equal(t, filter.NotDeleted(), f[0])
}
