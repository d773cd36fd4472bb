package handlers

import (
	"errors"
	"strings"

	"github.com/dimitrije/signshop-api/internal/services"
	"github.com/dimitrije/signshop-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService ProductServiceInterface
	logger         *zap.Logger
}

func NewProductHandler(productService ProductServiceInterface, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, logger: logger}
}

func (h *ProductHandler) List(c *drift.Context) {
	products, err := h.productService.List(c.Request.Context(), c.QueryParam("category"), c.QueryParam("subcategory"))
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		c.InternalServerError("failed to list products")
		return
	}
	_ = c.JSON(200, products)
}

func (h *ProductHandler) Get(c *drift.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, services.ErrProductNotFound) {
		c.NotFound("product not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to get product")
		return
	}
	_ = c.JSON(200, product)
}

func (h *ProductHandler) Categories(c *drift.Context) {
	categories, err := h.productService.Categories(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load product categories", zap.Error(err))
		c.InternalServerError("failed to load categories")
		return
	}
	_ = c.JSON(200, categories)
}

func (h *ProductHandler) Create(c *drift.Context) {
	var req dto.CreateProductRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	in := services.CreateProductInput{
		Slug:         strings.TrimSpace(req.Slug),
		Name:         strings.TrimSpace(req.Name),
		MainCategory: strings.TrimSpace(req.MainCategory),
		SubCategory:  req.SubCategory,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		PriceCents:   req.PriceCents,
	}
	if in.Slug == "" || in.Name == "" || in.MainCategory == "" {
		c.BadRequest("slug, name and main_category are required")
		return
	}
	if in.PriceCents != nil && *in.PriceCents < 0 {
		c.BadRequest("price_cents must not be negative")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), in)
	if errors.Is(err, services.ErrProductSlugTaken) {
		_ = c.JSON(409, map[string]string{"error": "product slug already exists"})
		return
	}
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		c.InternalServerError("failed to create product")
		return
	}
	_ = c.JSON(201, product)
}

func (h *ProductHandler) Delete(c *drift.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.BadRequest("invalid product id")
		return
	}

	err = h.productService.Delete(c.Request.Context(), productID)
	if errors.Is(err, services.ErrProductNotFound) {
		c.NotFound("product not found")
		return
	}
	if err != nil {
		c.InternalServerError("failed to delete product")
		return
	}
	_ = c.JSON(200, map[string]string{"message": "product deleted"})
}
