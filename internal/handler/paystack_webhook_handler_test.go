package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"markaz/config"
	"markaz/internal/domain"
	"markaz/internal/models"
	"markaz/internal/repository"
	"markaz/internal/service"
	"markaz/internal/ws"
	"markaz/pkg/paystack"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "sk_test_webhook"

func newWebhookRig(t *testing.T) (*gin.Engine, *repository.DonationRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Donation{}, &models.AuditLog{}))

	cfg := config.Load()
	cfg.Paystack.SecretKey = testSecret
	donationRepo := repository.NewDonationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	gateway := paystack.New("http://127.0.0.1:0", testSecret, time.Second)
	svc := service.NewDonationService(cfg, donationRepo, auditRepo, gateway, ws.NewFeedHub())

	r := gin.New()
	r.POST("/api/v1/webhooks/paystack", NewPaystackWebhookHandler(svc, cfg).Handle)
	return r, donationRepo
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/paystack", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedPending(t *testing.T, repo *repository.DonationRepository, reference string) {
	t.Helper()
	require.NoError(t, repo.Create(&models.Donation{
		Reference:  reference,
		Amount:     5000,
		Currency:   "NGN",
		DonorEmail: "donor@example.org",
		Method:     domain.MethodCard,
		Status:     domain.DonationPending,
	}))
}

func TestWebhookValidSignatureReconciles(t *testing.T) {
	r, repo := newWebhookRig(t)
	seedPending(t, repo, "TXN123")

	body := []byte(`{"event":"charge.success","data":{"reference":"TXN123","id":99}}`)
	w := postWebhook(r, body, paystack.Signature(testSecret, body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())

	d, err := repo.GetByReference("TXN123")
	require.NoError(t, err)
	assert.Equal(t, domain.DonationSuccess, d.Status)
	require.NotNil(t, d.PaystackTxnID)
	assert.EqualValues(t, 99, *d.PaystackTxnID)
}

func TestWebhookTamperedSignatureRejected(t *testing.T) {
	r, repo := newWebhookRig(t)
	seedPending(t, repo, "TXN123")

	body := []byte(`{"event":"charge.success","data":{"reference":"TXN123","id":99}}`)
	w := postWebhook(r, body, paystack.Signature("wrong-secret", body))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	d, err := repo.GetByReference("TXN123")
	require.NoError(t, err)
	assert.Equal(t, domain.DonationPending, d.Status)
}

func TestWebhookMissingSignatureRejected(t *testing.T) {
	r, repo := newWebhookRig(t)
	seedPending(t, repo, "TXN123")

	body := []byte(`{"event":"charge.success","data":{"reference":"TXN123","id":99}}`)
	w := postWebhook(r, body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	d, err := repo.GetByReference("TXN123")
	require.NoError(t, err)
	assert.Equal(t, domain.DonationPending, d.Status)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	r, repo := newWebhookRig(t)
	seedPending(t, repo, "TXN123")

	body := []byte(`{"event":"charge.success","data":{"reference":"TXN123","id":99}}`)
	sig := paystack.Signature(testSecret, body)

	w := postWebhook(r, body, sig)
	assert.Equal(t, http.StatusOK, w.Code)
	first, err := repo.GetByReference("TXN123")
	require.NoError(t, err)
	firstVerifiedAt := *first.VerifiedAt

	w = postWebhook(r, body, sig)
	assert.Equal(t, http.StatusOK, w.Code)

	second, err := repo.GetByReference("TXN123")
	require.NoError(t, err)
	assert.EqualValues(t, 99, *second.PaystackTxnID)
	assert.True(t, second.VerifiedAt.Equal(firstVerifiedAt))
}

func TestWebhookLaterNotificationCannotRewriteMetadata(t *testing.T) {
	r, repo := newWebhookRig(t)
	seedPending(t, repo, "TXN123")

	body := []byte(`{"event":"charge.success","data":{"reference":"TXN123","id":99}}`)
	postWebhook(r, body, paystack.Signature(testSecret, body))

	// a different notification for the same reference
	body2 := []byte(`{"event":"charge.success","data":{"reference":"TXN123","id":777}}`)
	w := postWebhook(r, body2, paystack.Signature(testSecret, body2))
	assert.Equal(t, http.StatusOK, w.Code)

	d, err := repo.GetByReference("TXN123")
	require.NoError(t, err)
	assert.EqualValues(t, 99, *d.PaystackTxnID)
}

func TestWebhookUnknownReferenceStillAcks(t *testing.T) {
	r, _ := newWebhookRig(t)

	body := []byte(`{"event":"charge.success","data":{"reference":"no-such-ref","id":5}}`)
	w := postWebhook(r, body, paystack.Signature(testSecret, body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	r, repo := newWebhookRig(t)
	seedPending(t, repo, "TXN123")

	body := []byte(`{"event":"charge.failed","data":{"reference":"TXN123","id":99}}`)
	w := postWebhook(r, body, paystack.Signature(testSecret, body))
	assert.Equal(t, http.StatusOK, w.Code)

	d, err := repo.GetByReference("TXN123")
	require.NoError(t, err)
	assert.Equal(t, domain.DonationPending, d.Status)
}
