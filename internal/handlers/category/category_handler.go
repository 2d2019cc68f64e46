// internal/handlers/category/category_handler.go
package category

import (
	"net/http"

	"showroom-service/internal/pkg/response"
	service "showroom-service/internal/service/category"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// ListCategories returns the main categories with nested subcategories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	tree, err := h.categoryService.Tree(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Category not found")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"categories": tree})
}

// ListFlat returns every active category in display order.
func (h *CategoryHandler) ListFlat(c *gin.Context) {
	categories, err := h.categoryService.Flat(c.Request.Context())
	if err != nil {
		response.FromError(c, err, "Category not found")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"categories": categories})
}
