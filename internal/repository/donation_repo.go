package repository

import (
	"markaz/internal/domain"
	"markaz/internal/models"

	"gorm.io/gorm"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(d *models.Donation) error {
	return r.db.Create(d).Error
}

func (r *DonationRepository) GetByID(id uint) (*models.Donation, error) {
	var d models.Donation
	if err := r.db.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonationRepository) GetByReference(ref string) (*models.Donation, error) {
	var d models.Donation
	if err := r.db.Where("reference = ?", ref).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonationRepository) Update(d *models.Donation) error {
	return r.db.Save(d).Error
}

// List returns donations for the back office, optionally filtered by status
// and method.
func (r *DonationRepository) List(status, method string, limit, offset int) ([]models.Donation, int64, error) {
	q := r.db.Model(&models.Donation{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if method != "" {
		q = q.Where("method = ?", method)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Donation
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

// DonationStats summarizes donations for the dashboard.
type DonationStats struct {
	TotalReceived int64 `json:"total_received"` // sum of SUCCESS amounts, major units
	SuccessCount  int64 `json:"success_count"`
	PendingCount  int64 `json:"pending_count"`
	FailedCount   int64 `json:"failed_count"`
}

func (r *DonationRepository) Stats() (*DonationStats, error) {
	var stats DonationStats
	err := r.db.Model(&models.Donation{}).
		Where("status = ?", domain.DonationSuccess).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalReceived).Error
	if err != nil {
		return nil, err
	}
	counts := map[string]*int64{
		domain.DonationSuccess: &stats.SuccessCount,
		domain.DonationPending: &stats.PendingCount,
		domain.DonationFailed:  &stats.FailedCount,
	}
	for status, dst := range counts {
		if err := r.db.Model(&models.Donation{}).Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
