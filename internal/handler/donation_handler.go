package handler

import (
	"errors"
	"net/http"

	"markaz/internal/middleware"
	"markaz/internal/repository"
	"markaz/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DonationHandler struct {
	donationSvc  *service.DonationService
	donationRepo *repository.DonationRepository
}

func NewDonationHandler(donationSvc *service.DonationService, donationRepo *repository.DonationRepository) *DonationHandler {
	return &DonationHandler{donationSvc: donationSvc, donationRepo: donationRepo}
}

// Initiate handles POST /donations/initiate — public checkout start.
func (h *DonationHandler) Initiate(c *gin.Context) {
	var req struct {
		Amount    int64  `json:"amount" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Name      string `json:"name"`
		Reference string `json:"reference"`
		Method    string `json:"method"` // CARD (default) | BANK
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, checkoutURL, err := h.donationSvc.Initialize(c.Request.Context(), req.Amount, req.Email, req.Name, req.Reference, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrEmailRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// gateway rejections carry the gateway's own message
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference":         d.Reference,
		"authorization_url": checkoutURL,
		"status":            d.Status,
	})
}

// VerifyByReference handles GET /donations/verify/:reference — pull-based
// reconciliation for missed webhooks. Always hits the live gateway, so the
// response is marked uncacheable.
func (h *DonationHandler) VerifyByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference required"})
		return
	}
	c.Header("Cache-Control", "no-store")
	data, err := h.donationSvc.VerifyByReference(c.Request.Context(), reference)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reference": data.Reference, "status": data.Status, "amount": data.Amount})
}

// List handles GET /admin/donations.
func (h *DonationHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.donationRepo.List(c.Query("status"), c.Query("method"), limit, (page-1)*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// Stats handles GET /admin/donations/stats.
func (h *DonationHandler) Stats(c *gin.Context) {
	stats, err := h.donationRepo.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// VerifyBankTransfer handles POST /admin/donations/:id/verify — manual
// confirmation of a bank transfer by the signed-in admin.
func (h *DonationHandler) VerifyBankTransfer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	d, err := h.donationSvc.VerifyBankTransfer(id, middleware.GetEmail(c))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		case errors.Is(err, service.ErrNotBankTransfer):
			c.JSON(http.StatusBadRequest, gin.H{"error": "donation is not a bank transfer"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		}
		return
	}
	c.JSON(http.StatusOK, d)
}
