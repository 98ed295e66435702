package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"markaz/config"
	"markaz/internal/service"
	"markaz/pkg/paystack"

	"github.com/gin-gonic/gin"
)

type PaystackWebhookHandler struct {
	donationSvc *service.DonationService
	cfg         *config.Config
}

func NewPaystackWebhookHandler(donationSvc *service.DonationService, cfg *config.Config) *PaystackWebhookHandler {
	return &PaystackWebhookHandler{donationSvc: donationSvc, cfg: cfg}
}

type chargeEvent struct {
	Event string `json:"event"`
	Data  struct {
		ID        int64  `json:"id"`
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

// Handle processes gateway notifications. The signature is verified over the
// raw body BEFORE any parsing; parse-then-reserialize would change the bytes
// and break the HMAC. Unmatched or already-reconciled events still return
// 200 so the gateway does not retry-storm.
func (h *PaystackWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	sig := c.GetHeader("X-Signature")
	if !paystack.VerifySignature(h.cfg.Paystack.SecretKey, body, sig) {
		log.Printf("[Paystack webhook] signature mismatch from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}
	var payload chargeEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.Event != "charge.success" {
		log.Printf("[Paystack webhook] ignoring event %s", payload.Event)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if payload.Data.Reference == "" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	_, updated, err := h.donationSvc.ReconcileCharge(payload.Data.Reference, payload.Data.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if updated {
		log.Printf("[Paystack webhook] donation %s reconciled (txn %d)", payload.Data.Reference, payload.Data.ID)
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
