package repository

import (
	"time"

	"markaz/internal/domain"
	"markaz/internal/models"

	"gorm.io/gorm"
)

// IntakeRepository handles volunteer and partner form submissions.
type IntakeRepository struct {
	db *gorm.DB
}

func NewIntakeRepository(db *gorm.DB) *IntakeRepository {
	return &IntakeRepository{db: db}
}

func (r *IntakeRepository) CreateVolunteer(v *models.Volunteer) error {
	v.Status = domain.IntakeNew
	return r.db.Create(v).Error
}

func (r *IntakeRepository) ListVolunteers(status string, limit, offset int) ([]models.Volunteer, int64, error) {
	q := r.db.Model(&models.Volunteer{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Volunteer
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *IntakeRepository) ReviewVolunteer(id uint, reviewer string) error {
	now := time.Now()
	return r.db.Model(&models.Volunteer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      domain.IntakeReviewed,
		"reviewed_by": reviewer,
		"reviewed_at": &now,
	}).Error
}

func (r *IntakeRepository) CreatePartner(p *models.Partner) error {
	p.Status = domain.IntakeNew
	return r.db.Create(p).Error
}

func (r *IntakeRepository) ListPartners(status string, limit, offset int) ([]models.Partner, int64, error) {
	q := r.db.Model(&models.Partner{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Partner
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *IntakeRepository) ReviewPartner(id uint, reviewer string) error {
	now := time.Now()
	return r.db.Model(&models.Partner{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      domain.IntakeReviewed,
		"reviewed_by": reviewer,
		"reviewed_at": &now,
	}).Error
}
