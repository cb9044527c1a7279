package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driftbox/driftbox/internal/api/metrics"
	"github.com/driftbox/driftbox/internal/core/domain"
	"github.com/driftbox/driftbox/internal/core/ports"
)

// FileHandler handles upload, fetch and the owner's file listing.
type FileHandler struct {
	fileService ports.FileService
}

func NewFileHandler(fileService ports.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

type meResponse struct {
	Name  string           `json:"name"`
	Files []ports.FileMeta `json:"files"`
}

// Upload stores a file for the authenticated user.
//
// @Summary      Upload a file
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "File content (PNG)"
// @Success      200   {object}  ports.UploadResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /files [post]
func (h *FileHandler) Upload(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "please send a valid file"})
	}

	src, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}
	defer src.Close()

	result, err := h.fileService.Upload(c.Request().Context(), identity, ports.UploadInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Reader:      src,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFile) {
			metrics.UploadsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "please send a valid file"})
		}
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.UploadBytes.Observe(float64(result.Size))
	return c.JSON(http.StatusOK, result)
}

// Fetch streams a stored file back to its owner.
//
// @Summary      Download a file by key
// @Tags         files
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        key  path      string  true  "Storage key"
// @Success      200  {file}    binary
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /files/{key} [get]
func (h *FileHandler) Fetch(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.fileService.Fetch(c.Request().Context(), identity, c.Param("key"))
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			metrics.DownloadsTotal.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, map[string]string{"error": "file not found"})
		}
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	defer result.Content.Close()

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	return c.Stream(http.StatusOK, result.ContentType, result.Content)
}

// Me returns the authenticated user's name and owned files.
//
// @Summary      Current user and their files
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *FileHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	files, err := h.fileService.ListOwned(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{Name: identity.Name, Files: files})
}
