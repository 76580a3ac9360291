package transport

import (
	"time"

	"product-catalog/internal/domain"

	"github.com/shopspring/decimal"
)

// ProductRequest is the payload of create and full replace
type ProductRequest struct {
	Name         string           `json:"name" validate:"required,max=255"`
	Description  string           `json:"description" validate:"max=2000"`
	ImageURL     string           `json:"imageUrl" validate:"omitempty,url,max=1024"`
	Price        *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Currency     string           `json:"currency" validate:"required,currency"`
	CategoryName string           `json:"categoryName" validate:"required,max=255"`
}

// ToInput converts the request into a service input
func (r ProductRequest) ToInput() domain.ProductInput {
	currency, _ := domain.ParseCurrency(r.Currency)
	return domain.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Price:       &domain.Price{Amount: *r.Price, Currency: currency},
		Category:    &domain.CategoryRef{Name: r.CategoryName},
	}
}

// ProductPatchRequest is the payload of a partial update. Absent fields are left unchanged.
type ProductPatchRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string          `json:"description" validate:"omitempty,max=2000"`
	ImageURL     *string          `json:"imageUrl" validate:"omitempty,url,max=1024"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Currency     *string          `json:"currency" validate:"omitempty,currency"`
	CategoryName *string          `json:"categoryName" validate:"omitempty,max=255"`
}

// ToPatch converts the request into a service patch
func (r ProductPatchRequest) ToPatch() domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}

	if r.Price != nil || r.Currency != nil {
		patch.Price = &domain.PricePatch{Amount: r.Price}
		if r.Currency != nil {
			currency, _ := domain.ParseCurrency(*r.Currency)
			patch.Price.Currency = &currency
		}
	}

	if r.CategoryName != nil {
		patch.Category = &domain.CategoryRef{Name: *r.CategoryName}
	}

	return patch
}

// CategoryRequest is the payload of category creation
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

type PriceResponse struct {
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	CurrencyName string          `json:"currencyName,omitempty"`
}

type ProductResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	ImageURL       string         `json:"imageUrl"`
	Price          *PriceResponse `json:"price,omitempty"`
	CategoryName   string         `json:"categoryName"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastModifiedAt time.Time      `json:"lastModifiedAt"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SearchResponse is one page of search results
type SearchResponse struct {
	Products      []ProductResponse `json:"products"`
	CurrentPage   int               `json:"currentPage"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	PageSize      int               `json:"pageSize"`
	HasNext       bool              `json:"hasNext"`
	HasPrevious   bool              `json:"hasPrevious"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
}

type SuggestionResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryName string `json:"categoryName,omitempty"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		CategoryName:   p.CategoryName(),
		CreatedAt:      p.CreatedAt,
		LastModifiedAt: p.LastModifiedAt,
	}
	if p.Price != nil {
		resp.Price = &PriceResponse{
			Amount:       p.Price.Amount,
			Currency:     string(p.Price.Currency),
			CurrencyName: p.Price.Currency.FullName(),
		}
	}
	return resp
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
	}
}

func toSearchResponse(page *domain.Page[*domain.Product]) SearchResponse {
	return SearchResponse{
		Products:      toProductResponses(page.Items),
		CurrentPage:   page.Number,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		PageSize:      page.Size,
		HasNext:       page.HasNext(),
		HasPrevious:   page.HasPrevious(),
		First:         page.IsFirst(),
		Last:          page.IsLast(),
	}
}

func toSuggestionResponses(products []*domain.Product) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(products))
	for _, p := range products {
		out = append(out, SuggestionResponse{
			ID:           p.ID.String(),
			Name:         p.Name,
			CategoryName: p.CategoryName(),
		})
	}
	return out
}
