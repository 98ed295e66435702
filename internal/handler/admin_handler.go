package handler

import (
	"errors"
	"net/http"

	"markaz/internal/repository"
	"markaz/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers dashboard stats, staff accounts, and the audit trail.
type AdminHandler struct {
	authSvc      *service.AuthService
	userRepo     *repository.UserRepository
	donationRepo *repository.DonationRepository
	articleRepo  *repository.ArticleRepository
	seriesRepo   *repository.SeriesRepository
	albumRepo    *repository.AlbumRepository
	playlistRepo *repository.PlaylistRepository
	auditRepo    *repository.AuditLogRepository
}

func NewAdminHandler(
	authSvc *service.AuthService,
	userRepo *repository.UserRepository,
	donationRepo *repository.DonationRepository,
	articleRepo *repository.ArticleRepository,
	seriesRepo *repository.SeriesRepository,
	albumRepo *repository.AlbumRepository,
	playlistRepo *repository.PlaylistRepository,
	auditRepo *repository.AuditLogRepository,
) *AdminHandler {
	return &AdminHandler{
		authSvc:      authSvc,
		userRepo:     userRepo,
		donationRepo: donationRepo,
		articleRepo:  articleRepo,
		seriesRepo:   seriesRepo,
		albumRepo:    albumRepo,
		playlistRepo: playlistRepo,
		auditRepo:    auditRepo,
	}
}

// Dashboard handles GET /admin/dashboard — overview stats.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	donations, err := h.donationRepo.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	articles, _ := h.articleRepo.Count()
	series, _ := h.seriesRepo.Count()
	albums, _ := h.albumRepo.Count()
	playlists, _ := h.playlistRepo.Count()
	c.JSON(http.StatusOK, gin.H{
		"donations": donations,
		"articles":  articles,
		"series":    series,
		"albums":    albums,
		"playlists": playlists,
	})
}

// CreateStaff handles POST /admin/staff.
func (h *AdminHandler) CreateStaff(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required,oneof=ADMIN EDITOR"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.authSvc.CreateStaff(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// ListStaff handles GET /admin/staff.
func (h *AdminHandler) ListStaff(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.userRepo.List(limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

// DeleteStaff handles DELETE /admin/staff/:id.
func (h *AdminHandler) DeleteStaff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.userRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// AuditTrail handles GET /admin/audit.
func (h *AdminHandler) AuditTrail(c *gin.Context) {
	page, limit := parsePagination(c)
	entries, err := h.auditRepo.List(c.Query("action"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load audit trail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries, "page": page, "limit": limit})
}
