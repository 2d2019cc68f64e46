// internal/handlers/image/image_handler.go
package image

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"showroom-service/internal/domain/image"
	xerrors "showroom-service/internal/pkg/errors"
	"showroom-service/internal/pkg/response"
	service "showroom-service/internal/service/image"

	"github.com/gin-gonic/gin"
)

const (
	msgNotFound = "Image not found"

	// multipartOverhead leaves room for the non-file form fields.
	multipartOverhead = 1 << 20
)

type ImageHandler struct {
	imageService *service.ImageService
}

func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
	}
}

// Upload accepts one image in the "image" field for a product or vignette.
func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.imageService.MaxBytes()+multipartOverhead)

	fh, err := c.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			response.FromError(c, xerrors.ErrFileTooLarge, msgNotFound)
		case errors.Is(err, http.ErrMissingFile):
			response.ValidationError(c, "No file uploaded")
		default:
			response.ValidationError(c, "invalid multipart form")
		}
		return
	}

	owner, err := ownerFromForm(c)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()

	up := &image.Upload{
		Owner:       owner,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
		IsPrimary:   parseBool(c.PostForm("is_primary")),
	}
	if caption := strings.TrimSpace(c.PostForm("caption")); caption != "" {
		up.Caption = &caption
	}

	id, path, err := h.imageService.Upload(c.Request.Context(), up)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Image uploaded successfully", gin.H{
		"id":         id,
		"image_path": path,
	})
}

// DeleteImage removes the image row and its file.
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid image ID")
		return
	}

	changes, err := h.imageService.Delete(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, msgNotFound)
		return
	}

	response.Success(c, http.StatusOK, "Image deleted successfully", gin.H{"changes": changes})
}

// ownerFromForm requires exactly one of product_id and vignette_id.
func ownerFromForm(c *gin.Context) (image.Owner, error) {
	productRaw := strings.TrimSpace(c.PostForm("product_id"))
	vignetteRaw := strings.TrimSpace(c.PostForm("vignette_id"))

	switch {
	case productRaw != "" && vignetteRaw == "":
		id, err := strconv.ParseInt(productRaw, 10, 64)
		if err != nil {
			return image.Owner{}, xerrors.Invalid("invalid product_id")
		}
		return image.ProductOwner(id), nil
	case vignetteRaw != "" && productRaw == "":
		id, err := strconv.ParseInt(vignetteRaw, 10, 64)
		if err != nil {
			return image.Owner{}, xerrors.Invalid("invalid vignette_id")
		}
		return image.VignetteOwner(id), nil
	}
	return image.Owner{}, xerrors.Invalid("exactly one of product_id or vignette_id is required")
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
