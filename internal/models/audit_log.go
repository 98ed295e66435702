package models

import "time"

// AuditLog records sensitive back-office actions (payment reconciliation,
// manual verifications, intake reviews).
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id,omitempty"` // nil for gateway-originated events
	Action     string    `gorm:"size:100;not null;index" json:"action"`
	Resource   string    `gorm:"size:50;not null" json:"resource"`
	ResourceID string    `gorm:"size:255" json:"resource_id"`
	IP         string    `gorm:"size:45" json:"ip"`
	UserAgent  string    `gorm:"size:512" json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}
