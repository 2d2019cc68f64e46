// internal/handlers/product/product_handler.go
package product

import (
	"net/http"
	"strconv"

	"showroom-service/internal/domain/product"
	"showroom-service/internal/pkg/response"
	service "showroom-service/internal/service/product"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Product not found"

type ProductHandler struct {
	productService *service.ProductService
}

func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ListProducts lists active products, optionally filtered by ?category=.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filters product.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters")
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"products": products})
}

// GetProduct returns a product with its images.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID")
		return
	}

	p, images, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"product": p, "images": images})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Product name is required")
		return
	}

	id, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Product created successfully", gin.H{"id": id})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID")
		return
	}

	var req product.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Product name is required")
		return
	}

	changes, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Product updated successfully", gin.H{"changes": changes})
}

// DeleteProduct soft deletes a product.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID")
		return
	}

	changes, err := h.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Product deleted successfully", gin.H{"changes": changes})
}
