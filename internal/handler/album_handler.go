package handler

import (
	"errors"
	"net/http"
	"strings"

	"markaz/internal/domain"
	"markaz/internal/models"
	"markaz/internal/repository"
	"markaz/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlbumHandler manages photo albums. Photos reference the album by title
// string, so album renames go through RenameAndPropagate.
type AlbumHandler struct {
	albumRepo *repository.AlbumRepository
	photoRepo *repository.PhotoRepository
	cloud     cloudinary.Client
}

func NewAlbumHandler(albumRepo *repository.AlbumRepository, photoRepo *repository.PhotoRepository, cloud cloudinary.Client) *AlbumHandler {
	return &AlbumHandler{albumRepo: albumRepo, photoRepo: photoRepo, cloud: cloud}
}

// List handles GET /albums — public gallery listing.
func (h *AlbumHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, err := h.albumRepo.List(limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list albums"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "page": page, "limit": limit})
}

// Photos handles GET /albums/:id/photos.
func (h *AlbumHandler) Photos(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	a, err := h.albumRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
		return
	}
	photos, err := h.photoRepo.ListByAlbum(a.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list photos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"album": a, "photos": photos})
}

// Create handles POST /admin/albums.
func (h *AlbumHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		CoverURL    string `json:"cover_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := &models.Album{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	}
	if err := h.albumRepo.Create(a); err != nil {
		if errors.Is(err, repository.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create album"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// Update handles PUT /admin/albums/:id. A title change rewrites the
// denormalized album field on every linked photo in the same transaction.
func (h *AlbumHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		CoverURL    *string `json:"cover_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, relinked, err := h.albumRepo.RenameAndPropagate(id, repository.AlbumUpdate{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyTitle):
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update album"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"album": a, "updated_photos": relinked})
}

// Delete handles DELETE /admin/albums/:id.
func (h *AlbumHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.albumRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete album"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadPhoto handles POST /admin/albums/:id/photos — multipart image upload.
func (h *AlbumHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	a, err := h.albumRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "album not found"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()
	publicID := "photo_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, thumb, err := h.cloud.UploadImage(c.Request.Context(), f, domain.FolderPhotos, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	photo := &models.Photo{
		Album:        a.Title,
		Caption:      c.PostForm("caption"),
		ImageURL:     url,
		ThumbnailURL: thumb,
	}
	if err := h.photoRepo.Create(photo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// DeletePhoto handles DELETE /admin/photos/:id.
func (h *AlbumHandler) DeletePhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.photoRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete photo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
