package models

import (
	"time"

	"gorm.io/gorm"
)

// Volunteer is a public intake form submission.
type Volunteer struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FullName   string         `gorm:"size:255;not null" json:"full_name"`
	Email      string         `gorm:"size:255;not null" json:"email"`
	Phone      string         `gorm:"size:32" json:"phone"`
	Skills     string         `gorm:"type:text" json:"skills"`
	Message    string         `gorm:"type:text" json:"message"`
	Status     string         `gorm:"size:20;not null;index" json:"status"` // NEW | REVIEWED
	ReviewedBy string         `gorm:"size:255" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Partner is an organization partnership request.
type Partner struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Organization string         `gorm:"size:255;not null" json:"organization"`
	ContactName  string         `gorm:"size:255;not null" json:"contact_name"`
	Email        string         `gorm:"size:255;not null" json:"email"`
	Phone        string         `gorm:"size:32" json:"phone"`
	Proposal     string         `gorm:"type:text" json:"proposal"`
	Status       string         `gorm:"size:20;not null;index" json:"status"` // NEW | REVIEWED
	ReviewedBy   string         `gorm:"size:255" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
