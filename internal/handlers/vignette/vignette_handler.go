// internal/handlers/vignette/vignette_handler.go
package vignette

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"showroom-service/internal/domain/vignette"
	"showroom-service/internal/pkg/response"
	service "showroom-service/internal/service/vignette"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Vignette not found"

type VignetteHandler struct {
	vignetteService *service.VignetteService
}

func NewVignetteHandler(vignetteService *service.VignetteService) *VignetteHandler {
	return &VignetteHandler{
		vignetteService: vignetteService,
	}
}

// ========== Vignettes ==========

func (h *VignetteHandler) ListVignettes(c *gin.Context) {
	vignettes, err := h.vignetteService.ListVignettes(c.Request.Context())
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"vignettes": vignettes})
}

// GetVignette returns the vignette with its products and images.
func (h *VignetteHandler) GetVignette(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid vignette ID")
		return
	}

	detail, err := h.vignetteService.GetVignette(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.JSON(c, http.StatusOK, detail)
}

func (h *VignetteHandler) CreateVignette(c *gin.Context) {
	var req vignette.VignetteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Vignette name is required")
		return
	}

	id, err := h.vignetteService.CreateVignette(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Vignette created successfully", gin.H{"id": id})
}

func (h *VignetteHandler) UpdateVignette(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid vignette ID")
		return
	}

	var req vignette.VignetteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Vignette name is required")
		return
	}

	changes, err := h.vignetteService.UpdateVignette(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Vignette updated successfully", gin.H{"changes": changes})
}

// DeleteVignette soft deletes a vignette.
func (h *VignetteHandler) DeleteVignette(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid vignette ID")
		return
	}

	changes, err := h.vignetteService.DeleteVignette(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Vignette deleted successfully", gin.H{"changes": changes})
}

// ========== Vignette products ==========

// AddProduct links a product into the vignette. The body is optional.
func (h *VignetteHandler) AddProduct(c *gin.Context) {
	vignetteID, productID, ok := linkIDs(c)
	if !ok {
		return
	}

	var req vignette.LinkProductRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ValidationError(c, "invalid request body")
		return
	}

	id, err := h.vignetteService.AddProduct(c.Request.Context(), vignetteID, productID, &req)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Product added to vignette successfully", gin.H{"id": id})
}

func (h *VignetteHandler) RemoveProduct(c *gin.Context) {
	vignetteID, productID, ok := linkIDs(c)
	if !ok {
		return
	}

	changes, err := h.vignetteService.RemoveProduct(c.Request.Context(), vignetteID, productID)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Product removed from vignette successfully", gin.H{"changes": changes})
}

func linkIDs(c *gin.Context) (int64, int64, bool) {
	vignetteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid vignette ID")
		return 0, 0, false
	}
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid product ID")
		return 0, 0, false
	}
	return vignetteID, productID, true
}
