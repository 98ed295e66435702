package handler

import (
	"net/http"
	"strings"

	"markaz/internal/domain"
	"markaz/internal/models"
	"markaz/internal/repository"
	"markaz/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EbookHandler struct {
	ebookRepo *repository.EbookRepository
	cloud     cloudinary.Client
}

func NewEbookHandler(ebookRepo *repository.EbookRepository, cloud cloudinary.Client) *EbookHandler {
	return &EbookHandler{ebookRepo: ebookRepo, cloud: cloud}
}

// List handles GET /ebooks — public library listing.
func (h *EbookHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.ebookRepo.List(limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list ebooks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// Create handles POST /admin/ebooks — multipart upload of the book file plus
// metadata and optional cover image.
func (h *EbookHandler) Create(c *gin.Context) {
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
	publicID := "book_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	fileURL, err := h.cloud.UploadRaw(c.Request.Context(), f, domain.FolderEbooks, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	coverURL := ""
	if cover, err := c.FormFile("cover"); err == nil {
		cf, err := cover.Open()
		if err == nil {
			defer cf.Close()
			coverURL, _, _ = h.cloud.UploadImage(c.Request.Context(), cf, domain.FolderEbooks, publicID+"_cover")
		}
	}
	e := &models.Ebook{
		Title:       title,
		Author:      c.PostForm("author"),
		Description: c.PostForm("description"),
		FileURL:     fileURL,
		CoverURL:    coverURL,
	}
	if err := h.ebookRepo.Create(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ebook"})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// Update handles PUT /admin/ebooks/:id — metadata only; the file stays.
func (h *EbookHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Title       string `json:"title" binding:"required"`
		Author      string `json:"author"`
		Description string `json:"description"`
		CoverURL    string `json:"cover_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.ebookRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ebook not found"})
		return
	}
	e.Title = req.Title
	e.Author = req.Author
	e.Description = req.Description
	if req.CoverURL != "" {
		e.CoverURL = req.CoverURL
	}
	if err := h.ebookRepo.Update(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ebook"})
		return
	}
	c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /admin/ebooks/:id.
func (h *EbookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.ebookRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ebook"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
