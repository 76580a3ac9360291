package transport

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"product-catalog/internal/domain"
	"product-catalog/internal/middleware"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Search defaults applied when a parameter is absent
const (
	defaultPage            = 0
	defaultPageSize        = 10
	defaultSortBy          = "createdAt"
	defaultSortDir         = "desc"
	defaultSuggestionLimit = 5
)

// SearchHandler handles HTTP requests for product search
type SearchHandler struct {
	searchService service.SearchService
	logger        *zap.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService service.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// RegisterRoutes registers the search routes behind the given middleware
func (h *SearchHandler) RegisterRoutes(r chi.Router, mw ...func(http.Handler) http.Handler) {
	r.Route("/search", func(r chi.Router) {
		r.Use(mw...)
		r.Get("/products", h.SearchProducts)
		r.Get("/products/suggest", h.GetSuggestions)
	})
}

// SearchProducts handles filtered, paginated and sorted product search
func (h *SearchHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	page, err := h.searchService.SearchProducts(r.Context(), query)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("query", r.URL.RawQuery))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toSearchResponse(page))
}

// GetSuggestions handles name-prefix suggestions
func (h *SearchHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	prefix := params.Get("prefix")
	if strings.TrimSpace(prefix) == "" {
		respondWithServiceError(w, h.logger, domain.NewInvalidSearchParameter("prefix is required"))
		return
	}

	limit, err := intParam(params, "limit", defaultSuggestionLimit)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	products, err := h.searchService.GetSuggestions(r.Context(), prefix, limit)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("prefix", prefix))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toSuggestionResponses(products))
}

// parseSearchQuery converts query parameters into a SearchQuery.
// Malformed values are reported as InvalidSearchParameter errors.
func parseSearchQuery(params url.Values) (domain.SearchQuery, error) {
	q := domain.SearchQuery{
		Query:        params.Get("query"),
		CategoryName: params.Get("categoryName"),
		SortBy:       defaultSortBy,
		SortDir:      domain.ParseSortDirection(defaultSortDir),
	}

	var err error
	if q.MinPrice, err = decimalParam(params, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = decimalParam(params, "maxPrice"); err != nil {
		return q, err
	}
	if q.CreatedAfter, err = dateParam(params, "createdAfter"); err != nil {
		return q, err
	}
	if q.CreatedBefore, err = dateParam(params, "createdBefore"); err != nil {
		return q, err
	}
	if q.Page, err = intParam(params, "page", defaultPage); err != nil {
		return q, err
	}
	if q.Size, err = intParam(params, "size", defaultPageSize); err != nil {
		return q, err
	}

	if raw := params.Get("currency"); raw != "" {
		currency, err := domain.ParseCurrency(raw)
		if err != nil {
			return q, domain.NewInvalidSearchParameter("Invalid currency: %s", raw)
		}
		q.Currency = &currency
	}

	if raw := params.Get("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return q, domain.NewInvalidSearchParameter("Invalid categoryId: %s", raw)
		}
		q.CategoryID = &id
	}

	if params.Has("sortBy") {
		q.SortBy = params.Get("sortBy")
	}
	if params.Has("sortDir") {
		q.SortDir = domain.ParseSortDirection(params.Get("sortDir"))
	}

	return q, nil
}

func decimalParam(params url.Values, name string) (*decimal.Decimal, error) {
	raw := params.Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.NewInvalidSearchParameter("Invalid %s: %s", name, raw)
	}
	return &d, nil
}

func intParam(params url.Values, name string, def int) (int, error) {
	raw := params.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewInvalidSearchParameter("Invalid %s: %s", name, raw)
	}
	return n, nil
}

// dateParam accepts an ISO date (start of that day, UTC) or an RFC3339 timestamp
func dateParam(params url.Values, name string) (*time.Time, error) {
	raw := params.Get(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, domain.NewInvalidSearchParameter("Invalid %s: %s (expected YYYY-MM-DD)", name, raw)
}
