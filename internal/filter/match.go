package filter

import (
	"strings"
	"time"

	"product-catalog/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Matches reports whether p satisfies every predicate in f.
// Unknown field/operator combinations never match.
func (f Filter) Matches(p *domain.Product) bool {
	for _, pred := range f {
		if !pred.Matches(p) {
			return false
		}
	}
	return true
}

// Matches evaluates a single predicate against p
func (pred Predicate) Matches(p *domain.Product) bool {
	if pred.IsIdentity() {
		return true
	}

	switch pred.Field {
	case FieldIsDeleted:
		want, ok := pred.Value.(bool)
		return ok && pred.Op == OpEq && p.IsDeleted == want

	case FieldName:
		return matchText(pred, p.Name)

	case FieldCategoryName:
		if p.Category == nil {
			return false
		}
		return matchText(pred, p.Category.Name)

	case FieldPriceAmount:
		want, ok := pred.Value.(decimal.Decimal)
		if !ok || p.Price == nil {
			return false
		}
		return compare(pred.Op, p.Price.Amount.Cmp(want))

	case FieldPriceCurrency:
		want, ok := pred.Value.(domain.Currency)
		return ok && pred.Op == OpEq && p.Price != nil && p.Price.Currency == want

	case FieldCategoryID:
		if p.Category == nil {
			return false
		}
		switch pred.Op {
		case OpEq:
			want, ok := pred.Value.(uuid.UUID)
			return ok && p.Category.ID == want
		case OpIn:
			ids, ok := pred.Value.([]uuid.UUID)
			if !ok {
				return false
			}
			for _, id := range ids {
				if p.Category.ID == id {
					return true
				}
			}
		}
		return false

	case FieldCreatedAt:
		return matchTime(pred, p.CreatedAt)

	case FieldLastModified:
		return matchTime(pred, p.LastModifiedAt)
	}

	return false
}

func matchText(pred Predicate, value string) bool {
	want, ok := pred.Value.(string)
	if !ok {
		return false
	}

	switch pred.Op {
	case OpEq:
		return value == want
	case OpEqFold:
		return strings.ToLower(value) == want
	case OpContainsFold:
		return strings.Contains(strings.ToLower(value), want)
	case OpPrefixFold:
		return strings.HasPrefix(strings.ToLower(value), want)
	}
	return false
}

func matchTime(pred Predicate, value time.Time) bool {
	want, ok := pred.Value.(time.Time)
	if !ok {
		return false
	}
	return compare(pred.Op, value.Compare(want))
}

func compare(op Operator, cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpGte:
		return cmp >= 0
	case OpLte:
		return cmp <= 0
	}
	return false
}
