package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"markaz/config"
	"markaz/internal/domain"
	"markaz/internal/models"
	"markaz/internal/repository"
	"markaz/internal/ws"
	"markaz/pkg/paystack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T, gatewayURL string) (*DonationService, *repository.DonationRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Donation{}, &models.AuditLog{}))

	cfg := config.Load()
	cfg.Paystack.SecretKey = "sk_test_secret"
	donationRepo := repository.NewDonationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	gateway := paystack.New(gatewayURL, cfg.Paystack.SecretKey, 5*time.Second)
	svc := NewDonationService(cfg, donationRepo, auditRepo, gateway, ws.NewFeedHub())
	return svc, donationRepo
}

func TestInitializeRejectsBadInput(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:0")

	_, _, err := svc.Initialize(context.Background(), 0, "donor@example.org", "", "", domain.MethodCard)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = svc.Initialize(context.Background(), -50, "donor@example.org", "", "", domain.MethodCard)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = svc.Initialize(context.Background(), 5000, "", "", "", domain.MethodCard)
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestInitializeCardDonation(t *testing.T) {
	var gotAmount int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
		var body struct {
			Amount int64  `json:"amount"`
			Email  string `json:"email"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotAmount = body.Amount
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.example.org/abc123",
				"access_code":       "abc123",
				"reference":         "ref-1",
			},
		})
	}))
	defer srv.Close()

	svc, repo := newTestService(t, srv.URL)
	d, checkoutURL, err := svc.Initialize(context.Background(), 5000, "donor@example.org", "Aisha", "", domain.MethodCard)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.org/abc123", checkoutURL)
	assert.NotEmpty(t, d.Reference)
	assert.Equal(t, domain.DonationPending, d.Status)
	// gateway receives minor units
	assert.EqualValues(t, 500000, gotAmount)

	stored, err := repo.GetByReference(d.Reference)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, stored.Amount)
}

func TestInitializePropagatesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  false,
			"message": "Invalid key",
		})
	}))
	defer srv.Close()

	svc, _ := newTestService(t, srv.URL)
	_, _, err := svc.Initialize(context.Background(), 5000, "donor@example.org", "", "", domain.MethodCard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestInitializeBankDonationSkipsGateway(t *testing.T) {
	svc, repo := newTestService(t, "http://127.0.0.1:0") // unreachable on purpose
	d, checkoutURL, err := svc.Initialize(context.Background(), 2500, "donor@example.org", "Umar", "", domain.MethodBank)
	require.NoError(t, err)
	assert.Empty(t, checkoutURL)

	stored, err := repo.GetByReference(d.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.MethodBank, stored.Method)
	assert.Equal(t, domain.DonationPending, stored.Status)
}

func TestReconcileChargeIsIdempotent(t *testing.T) {
	svc, repo := newTestService(t, "http://127.0.0.1:0")
	require.NoError(t, repo.Create(&models.Donation{
		Reference:  "TXN123",
		Amount:     5000,
		Currency:   "NGN",
		DonorEmail: "donor@example.org",
		Method:     domain.MethodCard,
		Status:     domain.DonationPending,
	}))

	d, updated, err := svc.ReconcileCharge("TXN123", 99)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, domain.DonationSuccess, d.Status)
	require.NotNil(t, d.PaystackTxnID)
	assert.EqualValues(t, 99, *d.PaystackTxnID)
	require.NotNil(t, d.VerifiedAt)
	firstVerifiedAt := *d.VerifiedAt

	// replay with a DIFFERENT transaction id must not overwrite anything
	d2, updated, err := svc.ReconcileCharge("TXN123", 777)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.EqualValues(t, 99, *d2.PaystackTxnID)
	assert.True(t, d2.VerifiedAt.Equal(firstVerifiedAt))
}

func TestReconcileChargeUnknownReferenceIsNoop(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:0")
	d, updated, err := svc.ReconcileCharge("never-seen", 1)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.Nil(t, d)
}

func TestVerifyBankTransfer(t *testing.T) {
	svc, repo := newTestService(t, "http://127.0.0.1:0")
	pledge := &models.Donation{
		Reference:  "BANK-1",
		Amount:     10000,
		Currency:   "NGN",
		DonorEmail: "donor@example.org",
		Method:     domain.MethodBank,
		Status:     domain.DonationPending,
	}
	require.NoError(t, repo.Create(pledge))

	d, err := svc.VerifyBankTransfer(pledge.ID, "admin@markaz.example.org")
	require.NoError(t, err)
	assert.Equal(t, domain.DonationSuccess, d.Status)
	assert.Equal(t, "admin@markaz.example.org", d.VerifiedBy)
	require.NotNil(t, d.VerifiedAt)

	// re-confirming keeps the original verifier metadata
	d2, err := svc.VerifyBankTransfer(pledge.ID, "someone-else@markaz.example.org")
	require.NoError(t, err)
	assert.Equal(t, "admin@markaz.example.org", d2.VerifiedBy)
}

func TestVerifyBankTransferRejectsCardDonations(t *testing.T) {
	svc, repo := newTestService(t, "http://127.0.0.1:0")
	card := &models.Donation{
		Reference:  "CARD-1",
		Amount:     100,
		Currency:   "NGN",
		DonorEmail: "donor@example.org",
		Method:     domain.MethodCard,
		Status:     domain.DonationPending,
	}
	require.NoError(t, repo.Create(card))

	_, err := svc.VerifyBankTransfer(card.ID, "admin@markaz.example.org")
	assert.ErrorIs(t, err, ErrNotBankTransfer)
}
