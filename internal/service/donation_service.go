package service

import (
	"context"
	"errors"
	"log"
	"time"

	"markaz/config"
	"markaz/internal/domain"
	"markaz/internal/models"
	"markaz/internal/repository"
	"markaz/internal/ws"
	"markaz/pkg/paystack"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrEmailRequired   = errors.New("donor email is required")
	ErrNotBankTransfer = errors.New("donation is not a bank transfer")
)

// DonationService owns the donation lifecycle: checkout initiation, webhook
// reconciliation, manual bank-transfer confirmation, and live verification.
type DonationService struct {
	cfg          *config.Config
	donationRepo *repository.DonationRepository
	auditRepo    *repository.AuditLogRepository
	gateway      *paystack.Client
	feed         *ws.FeedHub
}

func NewDonationService(
	cfg *config.Config,
	donationRepo *repository.DonationRepository,
	auditRepo *repository.AuditLogRepository,
	gateway *paystack.Client,
	feed *ws.FeedHub,
) *DonationService {
	return &DonationService{
		cfg:          cfg,
		donationRepo: donationRepo,
		auditRepo:    auditRepo,
		gateway:      gateway,
		feed:         feed,
	}
}

// Initialize validates the donor input, records a PENDING donation, and for
// card donations opens a hosted-checkout session. The returned URL is empty
// for bank transfers, which wait for manual confirmation instead.
func (s *DonationService) Initialize(ctx context.Context, amount int64, email, name, reference, method string) (*models.Donation, string, error) {
	if amount <= 0 {
		return nil, "", ErrInvalidAmount
	}
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if method != domain.MethodBank {
		method = domain.MethodCard
	}
	if reference == "" {
		reference = uuid.New().String()
	}
	d := &models.Donation{
		Reference:  reference,
		Amount:     amount,
		Currency:   "NGN",
		DonorName:  name,
		DonorEmail: email,
		Method:     method,
		Status:     domain.DonationPending,
	}
	if err := s.donationRepo.Create(d); err != nil {
		return nil, "", err
	}
	if method == domain.MethodBank {
		return d, "", nil
	}
	init, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeRequest{
		Amount:      amount * 100, // gateway expects minor units
		Email:       email,
		Reference:   reference,
		CallbackURL: s.cfg.Paystack.CallbackBaseURL + "/donate/thank-you",
	})
	if err != nil {
		return nil, "", err
	}
	return d, init.AuthorizationURL, nil
}

// ReconcileCharge applies a verified charge.success event to the matching
// donation. Missing records and already-reconciled donations are benign
// no-ops so duplicate deliveries stay safe; updated reports whether a state
// transition actually happened.
func (s *DonationService) ReconcileCharge(reference string, txnID int64) (d *models.Donation, updated bool, err error) {
	d, err = s.donationRepo.GetByReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[Paystack webhook] no donation for reference %s, ignoring", reference)
			return nil, false, nil
		}
		return nil, false, err
	}
	if d.Status == domain.DonationSuccess {
		return d, false, nil
	}
	now := time.Now()
	d.Status = domain.DonationSuccess
	d.PaystackTxnID = &txnID
	d.VerifiedAt = &now
	if err := s.donationRepo.Update(d); err != nil {
		return nil, false, err
	}
	_ = s.auditRepo.Create(&models.AuditLog{
		Action:     "donation_reconciled",
		Resource:   "donation",
		ResourceID: reference,
	})
	s.broadcast(d)
	return d, true, nil
}

// VerifyBankTransfer marks a bank-transfer donation as received after a human
// confirmed the funds. Re-confirming a SUCCESS donation is a no-op and keeps
// the original verifier metadata.
func (s *DonationService) VerifyBankTransfer(id uint, verifier string) (*models.Donation, error) {
	d, err := s.donationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d.Method != domain.MethodBank {
		return nil, ErrNotBankTransfer
	}
	if d.Status == domain.DonationSuccess {
		return d, nil
	}
	now := time.Now()
	d.Status = domain.DonationSuccess
	d.VerifiedBy = verifier
	d.VerifiedAt = &now
	if err := s.donationRepo.Update(d); err != nil {
		return nil, err
	}
	_ = s.auditRepo.Create(&models.AuditLog{
		Action:     "bank_transfer_verified",
		Resource:   "donation",
		ResourceID: d.Reference,
	})
	s.broadcast(d)
	return d, nil
}

// VerifyByReference asks the gateway for the live status of a transaction.
// Used when a webhook was missed; the result is never cached.
func (s *DonationService) VerifyByReference(ctx context.Context, reference string) (*paystack.VerifyData, error) {
	return s.gateway.VerifyTransaction(ctx, reference)
}

func (s *DonationService) broadcast(d *models.Donation) {
	if s.feed == nil {
		return
	}
	s.feed.Broadcast(map[string]interface{}{
		"type":       "donation",
		"reference":  d.Reference,
		"amount":     d.Amount,
		"currency":   d.Currency,
		"donor_name": d.DonorName,
		"method":     d.Method,
	})
}
