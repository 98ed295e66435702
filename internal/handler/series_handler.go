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

// SeriesHandler manages audio series and their tracks. Tracks reference the
// series by title string, so series renames go through RenameAndPropagate.
type SeriesHandler struct {
	seriesRepo *repository.SeriesRepository
	audioRepo  *repository.AudioRepository
	cloud      cloudinary.Client
}

func NewSeriesHandler(seriesRepo *repository.SeriesRepository, audioRepo *repository.AudioRepository, cloud cloudinary.Client) *SeriesHandler {
	return &SeriesHandler{seriesRepo: seriesRepo, audioRepo: audioRepo, cloud: cloud}
}

// List handles GET /series — public listing.
func (h *SeriesHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, err := h.seriesRepo.List(c.Query("category"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "page": page, "limit": limit})
}

// Tracks handles GET /series/:id/tracks.
func (h *SeriesHandler) Tracks(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s, err := h.seriesRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "series not found"})
		return
	}
	tracks, err := h.audioRepo.ListBySeries(s.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tracks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": s, "tracks": tracks})
}

// Create handles POST /admin/series.
func (h *SeriesHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category"`
		CoverURL    string `json:"cover_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s := &models.Series{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
	}
	if err := h.seriesRepo.Create(s); err != nil {
		if errors.Is(err, repository.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create series"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

// Update handles PUT /admin/series/:id. A title change rewrites the
// denormalized series field on every linked track in the same transaction;
// the response reports how many tracks were relinked.
func (h *SeriesHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		CoverURL    *string `json:"cover_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, relinked, err := h.seriesRepo.RenameAndPropagate(id, repository.SeriesUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmptyTitle):
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "series not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update series"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": s, "updated_tracks": relinked})
}

// Delete handles DELETE /admin/series/:id.
func (h *SeriesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.seriesRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CreateTrack handles POST /admin/series/:id/tracks — multipart upload of an
// audio file plus metadata.
func (h *SeriesHandler) CreateTrack(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	s, err := h.seriesRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "series not found"})
		return
	}
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
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
	publicID := "track_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, err := h.cloud.UploadAudio(c.Request.Context(), f, domain.FolderAudio, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	track := &models.AudioTrack{
		Title:    title,
		Series:   s.Title,
		AudioURL: url,
	}
	if err := h.audioRepo.Create(track); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create track"})
		return
	}
	c.JSON(http.StatusCreated, track)
}

// DeleteTrack handles DELETE /admin/tracks/:id.
func (h *SeriesHandler) DeleteTrack(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.audioRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete track"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
