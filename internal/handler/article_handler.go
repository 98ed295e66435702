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

type ArticleHandler struct {
	articleRepo *repository.ArticleRepository
	cloud       cloudinary.Client
}

func NewArticleHandler(articleRepo *repository.ArticleRepository, cloud cloudinary.Client) *ArticleHandler {
	return &ArticleHandler{articleRepo: articleRepo, cloud: cloud}
}

// ListPublished handles GET /articles — public listing.
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.articleRepo.ListPublished(c.Query("category"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// Get handles GET /articles/:id.
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	a, err := h.articleRepo.GetByID(id)
	if err != nil || !a.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// ListAll handles GET /admin/articles.
func (h *ArticleHandler) ListAll(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.articleRepo.ListAll(limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list articles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

type articleRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body"`
	Category string `json:"category"`
	CoverURL string `json:"cover_url"`
	Author   string `json:"author"`
}

// Create handles POST /admin/articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a := &models.Article{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		CoverURL: req.CoverURL,
		Author:   req.Author,
	}
	if err := h.articleRepo.Create(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create article"})
		return
	}
	c.JSON(http.StatusCreated, a)
}

// Update handles PUT /admin/articles/:id.
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.articleRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	a.Title = req.Title
	a.Body = req.Body
	a.Category = req.Category
	a.CoverURL = req.CoverURL
	a.Author = req.Author
	if err := h.articleRepo.Update(a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update article"})
		return
	}
	c.JSON(http.StatusOK, a)
}

// SetPublished handles PATCH /admin/articles/:id/publish.
func (h *ArticleHandler) SetPublished(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Published bool `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.articleRepo.SetPublished(id, req.Published); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update article"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": req.Published})
}

// Delete handles DELETE /admin/articles/:id.
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.articleRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete article"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadCover handles POST /admin/articles/cover — uploads a cover image and
// returns its URL for the editor to attach.
func (h *ArticleHandler) UploadCover(c *gin.Context) {
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
	publicID := "cover_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, domain.FolderArticles, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
