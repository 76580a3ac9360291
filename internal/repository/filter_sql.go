package repository

import (
	"errors"
	"fmt"
	"strings"

	"product-catalog/internal/domain"
	"product-catalog/internal/filter"

	"github.com/google/uuid"
)

// productColumns maps logical product fields to columns of the
// products p JOIN categories c query used by every product read.
var productColumns = map[filter.Field]string{
	filter.FieldName:          "p.name",
	filter.FieldPriceAmount:   "p.price_amount",
	filter.FieldPriceCurrency: "p.price_currency",
	filter.FieldCategoryID:    "p.category_id",
	filter.FieldCategoryName:  "c.name",
	filter.FieldCreatedAt:     "p.created_at",
	filter.FieldLastModified:  "p.last_modified_at",
	filter.FieldIsDeleted:     "p.is_deleted",
}

// sortColumns lists the fields a product query may be ordered by
var sortColumns = map[filter.Field]string{
	filter.FieldName:         "p.name",
	filter.FieldPriceAmount:  "p.price_amount",
	filter.FieldCreatedAt:    "p.created_at",
	filter.FieldLastModified: "p.last_modified_at",
}

var ErrUnsupportedFilter = errors.New("unsupported filter")

// buildWhere folds f into a WHERE clause with $n placeholders starting at argIndex.
// An empty filter yields an empty clause.
func buildWhere(f filter.Filter, argIndex int) (string, []any, error) {
	conditions := make([]string, 0, len(f))
	args := make([]any, 0, len(f))

	for _, pred := range f {
		if pred.IsIdentity() {
			continue
		}

		column, ok := productColumns[pred.Field]
		if !ok {
			return "", nil, fmt.Errorf("%w: field %q", ErrUnsupportedFilter, pred.Field)
		}

		var condition string
		value := sqlValue(pred.Value)

		switch pred.Op {
		case filter.OpEq:
			condition = fmt.Sprintf("%s = $%d", column, argIndex)
		case filter.OpEqFold:
			condition = fmt.Sprintf("LOWER(%s) = $%d", column, argIndex)
		case filter.OpContainsFold, filter.OpPrefixFold:
			text, ok := pred.Value.(string)
			if !ok {
				return "", nil, fmt.Errorf("%w: %q needs a string operand", ErrUnsupportedFilter, pred.Op)
			}
			condition = fmt.Sprintf(`LOWER(%s) LIKE $%d ESCAPE '\'`, column, argIndex)
			value = filter.EscapeLike(text) + "%"
			if pred.Op == filter.OpContainsFold {
				value = "%" + value.(string)
			}
		case filter.OpGte:
			condition = fmt.Sprintf("%s >= $%d", column, argIndex)
		case filter.OpLte:
			condition = fmt.Sprintf("%s <= $%d", column, argIndex)
		case filter.OpIn:
			condition = fmt.Sprintf("%s = ANY($%d::uuid[])", column, argIndex)
		default:
			return "", nil, fmt.Errorf("%w: operator %q", ErrUnsupportedFilter, pred.Op)
		}

		conditions = append(conditions, condition)
		args = append(args, value)
		argIndex++
	}

	if len(conditions) == 0 {
		return "", args, nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

// buildOrderBy returns an ORDER BY clause with id as tie-breaker
func buildOrderBy(field filter.Field, direction domain.SortDirection) (string, error) {
	column, ok := sortColumns[field]
	if !ok {
		return "", fmt.Errorf("%w: sort field %q", ErrUnsupportedFilter, field)
	}

	if direction != domain.SortAsc {
		direction = domain.SortDesc
	}

	return fmt.Sprintf("ORDER BY %s %s, p.id %s", column, direction, direction), nil
}

// sqlValue converts domain values into driver-friendly arguments
func sqlValue(v any) any {
	switch val := v.(type) {
	case domain.Currency:
		return string(val)
	case uuid.UUID:
		return val.String()
	case []uuid.UUID:
		ids := make([]string, len(val))
		for i, id := range val {
			ids[i] = id.String()
		}
		return ids
	default:
		return v
	}
}
