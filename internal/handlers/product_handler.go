package handlers

import (
	"net/http"
	"strconv"

	"github.com/AdinubaEze/chiifykitchen-backend/internal/repository"
	"github.com/AdinubaEze/chiifykitchen-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type productRequest struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price"`
	Image           string           `json:"image"`
	Status          *int             `json:"status"`
	IsFeatured      *bool            `json:"is_featured"`
	CategoryID      uint             `json:"category_id"`
}

func (r productRequest) toInput() services.ProductInput {
	return services.ProductInput{
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		DiscountedPrice: r.DiscountedPrice,
		Image:           r.Image,
		Status:          r.Status,
		IsFeatured:      r.IsFeatured,
		CategoryID:      r.CategoryID,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Search:  c.Query("search"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if v := c.Query("status"); v != "" {
		if status, err := strconv.Atoi(v); err == nil {
			filter.Status = &status
		}
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "1" || v == "true"
		filter.Featured = &featured
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Products retrieved successfully.", gin.H{
		"products": products,
		"total":    total,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Product retrieved successfully.", product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}
	product, err := h.productService.Create(c.Request.Context(), CurrentUser(c), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "Product created successfully.", product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format.")
		return
	}
	product, err := h.productService.Update(c.Request.Context(), CurrentUser(c), id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Product updated successfully.", product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, "Product deleted successfully.", nil)
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
