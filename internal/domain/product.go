package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code accepted by the catalog
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
	CurrencyCHF Currency = "CHF"
	CurrencyCNY Currency = "CNY"
	CurrencySEK Currency = "SEK"
	CurrencyNZD Currency = "NZD"
)

var currencyNames = map[Currency]string{
	CurrencyUSD: "United States Dollar",
	CurrencyEUR: "Euro",
	CurrencyGBP: "British Pound Sterling",
	CurrencyINR: "Indian Rupee",
	CurrencyJPY: "Japanese Yen",
	CurrencyAUD: "Australian Dollar",
	CurrencyCAD: "Canadian Dollar",
	CurrencyCHF: "Swiss Franc",
	CurrencyCNY: "Chinese Yuan Renminbi",
	CurrencySEK: "Swedish Krona",
	CurrencyNZD: "New Zealand Dollar",
}

// Valid reports whether c is a supported currency code
func (c Currency) Valid() bool {
	_, ok := currencyNames[c]
	return ok
}

// FullName returns the display name of the currency
func (c Currency) FullName() string {
	return currencyNames[c]
}

// ParseCurrency parses a currency code, ignoring case and surrounding spaces
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// Price is a monetary amount in a single currency
type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

func (p Price) String() string {
	return string(p.Currency) + " " + p.Amount.StringFixed(2)
}

// Product represents a product in the catalog
type Product struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url"`
	Price          *Price    `json:"price"`
	Category       *Category `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
	IsDeleted      bool      `json:"-"`
}

// CategoryName returns the name of the product's category, or "" when it has none
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// Category represents a product category
type Category struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

// CategoryRef names a category from an incoming product write.
// Only Name participates in get-or-create; Description is used when the
// category does not exist yet.
type CategoryRef struct {
	Name        string
	Description string
}

// PricePatch carries the price sub-fields of a partial update
type PricePatch struct {
	Amount   *decimal.Decimal
	Currency *Currency
}

// ProductPatch is a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	ImageURL    *string
	Price       *PricePatch
	Category    *CategoryRef
}

// ProductInput carries every writable field of a product for create and full replace
type ProductInput struct {
	Name        string
	Description string
	ImageURL    string
	Price       *Price
	Category    *CategoryRef
}
