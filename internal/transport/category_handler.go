package transport

import (
	"encoding/json"
	"net/http"

	"product-catalog/internal/middleware"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes. Category creation goes through the given middleware.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, writeMiddleware ...func(http.Handler) http.Handler) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.GetAllCategories)
		r.Get("/id/{categoryID}", h.GetCategoryByID)
		r.Get("/name/{categoryName}", h.GetCategoryByName)
		r.Get("/products/{categoryName}", h.GetProductsByCategoryName)
		r.Post("/products", h.GetProductsByCategoryIDs)

		r.With(writeMiddleware...).Post("/", h.CreateCategory)
	})
}

func (h *CategoryHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetAllCategories(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	middleware.RespondWithJSON(w, http.StatusOK, out)
}

func (h *CategoryHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "categoryID")
	id, err := uuid.Parse(raw)
	if err != nil {
		middleware.RespondWithErrorCode(w, http.StatusNotFound, middleware.CodeCategoryNotFound,
			"category with id "+raw+" not found", nil)
		return
	}

	category, err := h.categoryService.GetCategoryByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("category_id", raw))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (h *CategoryHandler) GetCategoryByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "categoryName")

	category, err := h.categoryService.GetCategoryByName(r.Context(), name)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("category_name", name))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCategoryResponse(category))
}

// CreateCategory handles explicit category creation; a taken name is a conflict
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Create category validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("category_name", req.Name))
		return
	}

	h.logger.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("category_name", category.Name),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (h *CategoryHandler) GetProductsByCategoryName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "categoryName")

	products, err := h.categoryService.GetProductsByCategoryName(r.Context(), name)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("category_name", name))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products))
}

// GetProductsByCategoryIDs takes a JSON array of category ids
func (h *CategoryHandler) GetProductsByCategoryIDs(w http.ResponseWriter, r *http.Request) {
	var ids []uuid.UUID
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		h.logger.Debug("Category id list decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "request body must be a JSON array of category ids")
		return
	}

	if len(ids) == 0 {
		middleware.RespondWithErrorCode(w, http.StatusBadRequest, middleware.CodeValidationFailed,
			"at least one category id is required", nil)
		return
	}

	products, err := h.categoryService.GetProductsByCategoryIDs(r.Context(), ids)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.Int("category_ids", len(ids)))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products))
}
