package repository

import (
	"markaz/internal/models"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *AuditLogRepository) List(action string, limit, offset int) ([]models.AuditLog, error) {
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if action != "" {
		q = q.Where("action = ?", action)
	}
	var list []models.AuditLog
	err := q.Find(&list).Error
	return list, err
}
