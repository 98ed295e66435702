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

// PlaylistHandler manages video playlists. Videos reference the playlist by
// title string, so playlist renames go through RenameAndPropagate.
type PlaylistHandler struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
	cloud        cloudinary.Client
}

func NewPlaylistHandler(playlistRepo *repository.PlaylistRepository, videoRepo *repository.VideoRepository, cloud cloudinary.Client) *PlaylistHandler {
	return &PlaylistHandler{playlistRepo: playlistRepo, videoRepo: videoRepo, cloud: cloud}
}

// List handles GET /playlists — public listing.
func (h *PlaylistHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, err := h.playlistRepo.List(c.Query("category"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list playlists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "page": page, "limit": limit})
}

// Videos handles GET /playlists/:id/videos.
func (h *PlaylistHandler) Videos(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.playlistRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
		return
	}
	videos, err := h.videoRepo.ListByPlaylist(p.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list videos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlist": p, "videos": videos})
}

// Create handles POST /admin/playlists.
func (h *PlaylistHandler) Create(c *gin.Context) {
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
	p := &models.Playlist{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
	}
	if err := h.playlistRepo.Create(p); err != nil {
		if errors.Is(err, repository.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create playlist"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /admin/playlists/:id. A title change rewrites the
// denormalized playlist field on every linked video in the same transaction.
func (h *PlaylistHandler) Update(c *gin.Context) {
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
	p, relinked, err := h.playlistRepo.RenameAndPropagate(id, repository.PlaylistUpdate{
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
			c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update playlist"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"playlist": p, "updated_videos": relinked})
}

// Delete handles DELETE /admin/playlists/:id.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.playlistRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete playlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CreateVideo handles POST /admin/playlists/:id/videos. Accepts either a
// multipart file upload or an external video URL in the form body.
func (h *PlaylistHandler) CreateVideo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.playlistRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "playlist not found"})
		return
	}
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}
	videoURL := c.PostForm("video_url")
	thumbURL := c.PostForm("thumbnail_url")
	if videoURL == "" {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file or video_url required"})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		defer f.Close()
		publicID := "video_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
		videoURL, thumbURL, err = h.cloud.UploadVideo(c.Request.Context(), f, domain.FolderVideos, publicID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
	}
	v := &models.Video{
		Title:        title,
		Playlist:     p.Title,
		VideoURL:     videoURL,
		ThumbnailURL: thumbURL,
	}
	if err := h.videoRepo.Create(v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create video"})
		return
	}
	c.JSON(http.StatusCreated, v)
}

// DeleteVideo handles DELETE /admin/videos/:id.
func (h *PlaylistHandler) DeleteVideo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.videoRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete video"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
