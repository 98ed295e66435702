package models

import (
	"time"

	"gorm.io/gorm"
)

type Donation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Reference     string         `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	Amount        int64          `gorm:"not null" json:"amount"` // major units; x100 on the wire to the gateway
	Currency      string         `gorm:"size:3;default:'NGN'" json:"currency"`
	DonorName     string         `gorm:"size:255" json:"donor_name"`
	DonorEmail    string         `gorm:"size:255;not null" json:"donor_email"`
	Method        string         `gorm:"size:10;not null;index" json:"method"` // CARD | BANK
	Status        string         `gorm:"size:10;not null;index" json:"status"` // PENDING | SUCCESS | FAILED
	PaystackTxnID *int64         `gorm:"column:paystack_transaction_id" json:"paystack_transaction_id,omitempty"`
	VerifiedBy    string         `gorm:"size:255" json:"verified_by,omitempty"`
	VerifiedAt    *time.Time     `json:"verified_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Donation) TableName() string {
	return "donations"
}
