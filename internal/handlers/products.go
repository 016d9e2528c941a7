package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/avc/point-roulette/internal/domain"
	"github.com/avc/point-roulette/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductsHandler struct {
	productService domain.ProductService
	logger         *zap.Logger
}

func NewProductsHandler(productService domain.ProductService, logger *zap.Logger) *ProductsHandler {
	return &ProductsHandler{
		productService: productService,
		logger:         logger,
	}
}

type productRequest struct {
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	PointCost int64  `json:"point_cost"`
	Stock     int64  `json:"stock"`
	Active    *bool  `json:"active"`
}

// ListActive возвращает активные товары каталога
func (h *ProductsHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context(), true)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, products)
}

// ListAll возвращает все товары, включая неактивные (админ)
func (h *ProductsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context(), false)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusOK, products)
}

// Create создаёт товар (админ)
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product, err := h.productService.CreateProduct(r.Context(), &domain.Product{
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		PointCost: req.PointCost,
		Stock:     req.Stock,
		Active:    active,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, err.Error())
			return
		}
		h.logger.Error("failed to create product", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeOK(w, h.logger, http.StatusCreated, product)
}

// Update обновляет товар (админ)
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid product id")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	product, err := h.productService.UpdateProduct(r.Context(), &domain.Product{
		ID:        productID,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		PointCost: req.PointCost,
		Stock:     req.Stock,
		Active:    active,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			writeError(w, h.logger, http.StatusNotFound, CodeProductNotFound, "product not found")
		case errors.Is(err, service.ErrInvalidInput):
			writeError(w, h.logger, http.StatusBadRequest, CodeInvalidInput, err.Error())
		default:
			h.logger.Error("failed to update product", zap.Error(err), zap.Int64("product_id", productID))
			writeError(w, h.logger, http.StatusInternalServerError, CodeInternal, "internal server error")
		}
		return
	}

	writeOK(w, h.logger, http.StatusOK, product)
}
