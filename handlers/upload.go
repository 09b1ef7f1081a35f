package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the form boundary and headers.
const multipartOverhead = 64 << 10

// UploadImage godoc
// @Summary Upload a catalog image (admin)
// @Description Accepts JPEG, PNG, WebP or GIF in the "image" form field and returns its public path.
// @Tags admin-upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} map[string]any "success and imagePath"
// @Failure 400 {object} Envelope "No file, unsupported type or too large"
// @Router /admin/upload [post]
func (h *Handler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Uploads.MaxBytes()+multipartOverhead)

	fh, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, http.StatusBadRequest, "image is too large")
			return
		}
		fail(c, http.StatusBadRequest, "No image uploaded")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer f.Close()

	path, err := h.Uploads.SaveImage(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "imagePath": path})
}
