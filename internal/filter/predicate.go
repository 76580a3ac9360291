// Package filter builds composable conditions over the product collection.
//
// Every constructor returns a Predicate value. When its criterion is absent the
// constructor returns the identity predicate, which matches everything, so
// predicates can always be combined with And. Storage backends translate a
// Filter into their own query language; Matches evaluates one in memory.
package filter

import (
	"strings"
	"time"

	"product-catalog/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Field is a logical path on a product
type Field string

const (
	FieldName          Field = "name"
	FieldPriceAmount   Field = "price.amount"
	FieldPriceCurrency Field = "price.currency"
	FieldCategoryID    Field = "category.id"
	FieldCategoryName  Field = "category.name"
	FieldCreatedAt     Field = "createdAt"
	FieldLastModified  Field = "lastModifiedAt"
	FieldIsDeleted     Field = "isDeleted"
)

// Operator is the comparison a predicate applies to its field
type Operator string

const (
	OpAll          Operator = "all"
	OpEq           Operator = "eq"
	OpEqFold       Operator = "ieq"
	OpContainsFold Operator = "icontains"
	OpPrefixFold   Operator = "iprefix"
	OpGte          Operator = "gte"
	OpLte          Operator = "lte"
	OpIn           Operator = "in"
)

// Predicate is a single condition: Field Op Value.
// For the fold operators Value is already lower-cased.
type Predicate struct {
	Field Field
	Op    Operator
	Value any
}

// IsIdentity reports whether p matches every product
func (p Predicate) IsIdentity() bool {
	return p.Op == OpAll
}

// All returns the identity predicate
func All() Predicate {
	return Predicate{Op: OpAll}
}

// Filter is a conjunction of predicates. An empty Filter matches everything.
type Filter []Predicate

// And combines predicates into one Filter, dropping identities
func And(preds ...Predicate) Filter {
	f := make(Filter, 0, len(preds))
	for _, p := range preds {
		if p.IsIdentity() {
			continue
		}
		f = append(f, p)
	}
	return f
}

// And returns a new Filter with preds appended
func (f Filter) And(preds ...Predicate) Filter {
	out := make(Filter, 0, len(f)+len(preds))
	out = append(out, f...)
	return append(out, And(preds...)...)
}

// NotDeleted excludes soft-deleted products. It is never the identity.
func NotDeleted() Predicate {
	return Predicate{Field: FieldIsDeleted, Op: OpEq, Value: false}
}

// WithQuery matches products whose name contains text, ignoring case.
// Only the name is searched; descriptions are left to a full-text backend.
func WithQuery(text string) Predicate {
	if strings.TrimSpace(text) == "" {
		return All()
	}
	return Predicate{Field: FieldName, Op: OpContainsFold, Value: strings.ToLower(text)}
}

// WithNamePrefix matches products whose name starts with prefix, ignoring case
func WithNamePrefix(prefix string) Predicate {
	if strings.TrimSpace(prefix) == "" {
		return All()
	}
	return Predicate{Field: FieldName, Op: OpPrefixFold, Value: strings.ToLower(prefix)}
}

func WithMinPrice(min *decimal.Decimal) Predicate {
	if min == nil {
		return All()
	}
	return Predicate{Field: FieldPriceAmount, Op: OpGte, Value: *min}
}

func WithMaxPrice(max *decimal.Decimal) Predicate {
	if max == nil {
		return All()
	}
	return Predicate{Field: FieldPriceAmount, Op: OpLte, Value: *max}
}

func WithCurrency(currency *domain.Currency) Predicate {
	if currency == nil || *currency == "" {
		return All()
	}
	return Predicate{Field: FieldPriceCurrency, Op: OpEq, Value: *currency}
}

func WithCategoryID(id *uuid.UUID) Predicate {
	if id == nil || *id == uuid.Nil {
		return All()
	}
	return Predicate{Field: FieldCategoryID, Op: OpEq, Value: *id}
}

// WithCategoryIDs matches products linked to any of ids
func WithCategoryIDs(ids []uuid.UUID) Predicate {
	if len(ids) == 0 {
		return All()
	}
	return Predicate{Field: FieldCategoryID, Op: OpIn, Value: append([]uuid.UUID(nil), ids...)}
}

// WithCategoryName matches the category name ignoring case
func WithCategoryName(name string) Predicate {
	if strings.TrimSpace(name) == "" {
		return All()
	}
	return Predicate{Field: FieldCategoryName, Op: OpEqFold, Value: strings.ToLower(name)}
}

func WithCreatedAfter(t *time.Time) Predicate {
	if t == nil {
		return All()
	}
	return Predicate{Field: FieldCreatedAt, Op: OpGte, Value: *t}
}

func WithCreatedBefore(t *time.Time) Predicate {
	if t == nil {
		return All()
	}
	return Predicate{Field: FieldCreatedAt, Op: OpLte, Value: *t}
}

// EscapeLike escapes the LIKE wildcards and the escape character so input
// matches literally under `LIKE ... ESCAPE '\'`.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
