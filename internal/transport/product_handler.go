package transport

import (
	"net/http"

	"product-catalog/internal/middleware"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Writes go through the given middleware.
func (h *ProductHandler) RegisterRoutes(r chi.Router, writeMiddleware ...func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		// Public routes
		r.Get("/", h.GetAllProducts)
		r.Get("/{productID}", h.GetProduct)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(writeMiddleware...)
			r.Post("/", h.CreateProduct)
			r.Patch("/{productID}", h.UpdateProduct)
			r.Put("/{productID}", h.ReplaceProduct)
			r.Delete("/{productID}", h.DeleteProduct)
		})
	})
}

func (h *ProductHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAllProducts(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("product_id", id.String()))
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// CreateProduct handles product creation, creating the named category when it is new
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Create product validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), req.ToInput())
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("category_name", req.CategoryName))
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("category_name", product.CategoryName()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(product))
}

// UpdateProduct handles partial updates
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req ProductPatchRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update product validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, req.ToPatch())
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("product_id", id.String()))
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// ReplaceProduct handles full replacement
func (h *ProductHandler) ReplaceProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Replace product validation failed", zap.Error(err))
		middleware.RespondWithRequestError(w, err)
		return
	}

	product, err := h.productService.ReplaceProduct(r.Context(), id, req.ToInput())
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("product_id", id.String()))
		return
	}

	h.logger.Info("Product replaced", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// DeleteProduct soft-deletes a product and returns its final state
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.DeleteProduct(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, zap.String("product_id", id.String()))
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}

// productID parses the path id; a malformed id is reported as not found
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "productID")
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Debug("Invalid product id", zap.String("product_id", raw))
		middleware.RespondWithErrorCode(w, http.StatusNotFound, middleware.CodeProductNotFound,
			"product with id "+raw+" not found", nil)
		return uuid.Nil, false
	}
	return id, true
}
