package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SortDirection is the ordering applied to a sort key
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection returns SortAsc for "asc" in any case and SortDesc otherwise
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), "asc") {
		return SortAsc
	}
	return SortDesc
}

// SearchQuery holds the raw parameters of a product search.
// Nil pointers and empty strings mean "no constraint".
type SearchQuery struct {
	Query         string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	Currency      *Currency
	CategoryID    *uuid.UUID
	CategoryName  string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Page          int
	Size          int
	SortBy        string
	SortDir       SortDirection
}

// Page is one zero-indexed slice of an ordered result set
type Page[T any] struct {
	Items         []T   `json:"items"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage builds a page and derives its page count
func NewPage[T any](items []T, number, size int, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 1
	if size > 0 {
		totalPages = int(total / int64(size))
		if total%int64(size) > 0 {
			totalPages++
		}
	}

	return &Page[T]{
		Items:         items,
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

func (p *Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 0
}

func (p *Page[T]) IsFirst() bool {
	return !p.HasPrevious()
}

func (p *Page[T]) IsLast() bool {
	return !p.HasNext()
}
