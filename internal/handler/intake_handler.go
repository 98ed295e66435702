package handler

import (
	"net/http"

	"markaz/internal/middleware"
	"markaz/internal/models"
	"markaz/internal/repository"

	"github.com/gin-gonic/gin"
)

// IntakeHandler covers the public volunteer/partner forms and their admin
// review queue.
type IntakeHandler struct {
	intakeRepo *repository.IntakeRepository
	auditRepo  *repository.AuditLogRepository
}

func NewIntakeHandler(intakeRepo *repository.IntakeRepository, auditRepo *repository.AuditLogRepository) *IntakeHandler {
	return &IntakeHandler{intakeRepo: intakeRepo, auditRepo: auditRepo}
}

// CreateVolunteer handles POST /volunteers — public form submission.
func (h *IntakeHandler) CreateVolunteer(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Skills   string `json:"skills"`
		Message  string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v := &models.Volunteer{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Skills:   req.Skills,
		Message:  req.Message,
	}
	if err := h.intakeRepo.CreateVolunteer(v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submitted": true})
}

// CreatePartner handles POST /partners — public form submission.
func (h *IntakeHandler) CreatePartner(c *gin.Context) {
	var req struct {
		Organization string `json:"organization" binding:"required"`
		ContactName  string `json:"contact_name" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Phone        string `json:"phone"`
		Proposal     string `json:"proposal"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.Partner{
		Organization: req.Organization,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		Proposal:     req.Proposal,
	}
	if err := h.intakeRepo.CreatePartner(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"submitted": true})
}

// ListVolunteers handles GET /admin/volunteers.
func (h *IntakeHandler) ListVolunteers(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.intakeRepo.ListVolunteers(c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list volunteers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ReviewVolunteer handles POST /admin/volunteers/:id/review.
func (h *IntakeHandler) ReviewVolunteer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	reviewer := middleware.GetEmail(c)
	if err := h.intakeRepo.ReviewVolunteer(id, reviewer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to review"})
		return
	}
	userID := middleware.GetUserID(c)
	_ = h.auditRepo.Create(&models.AuditLog{
		UserID:     &userID,
		Action:     "volunteer_reviewed",
		Resource:   "volunteer",
		ResourceID: c.Param("id"),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	c.JSON(http.StatusOK, gin.H{"reviewed": true})
}

// ListPartners handles GET /admin/partners.
func (h *IntakeHandler) ListPartners(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.intakeRepo.ListPartners(c.Query("status"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list partners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// ReviewPartner handles POST /admin/partners/:id/review.
func (h *IntakeHandler) ReviewPartner(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	reviewer := middleware.GetEmail(c)
	if err := h.intakeRepo.ReviewPartner(id, reviewer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to review"})
		return
	}
	userID := middleware.GetUserID(c)
	_ = h.auditRepo.Create(&models.AuditLog{
		UserID:     &userID,
		Action:     "partner_reviewed",
		Resource:   "partner",
		ResourceID: c.Param("id"),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	c.JSON(http.StatusOK, gin.H{"reviewed": true})
}
