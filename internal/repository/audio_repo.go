package repository

import (
	"markaz/internal/models"

	"gorm.io/gorm"
)

type AudioRepository struct {
	db *gorm.DB
}

func NewAudioRepository(db *gorm.DB) *AudioRepository {
	return &AudioRepository{db: db}
}

func (r *AudioRepository) Create(t *models.AudioTrack) error {
	return r.db.Create(t).Error
}

func (r *AudioRepository) GetByID(id uint) (*models.AudioTrack, error) {
	var t models.AudioTrack
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListBySeries returns tracks linked by the series title string.
func (r *AudioRepository) ListBySeries(seriesTitle string) ([]models.AudioTrack, error) {
	var list []models.AudioTrack
	err := r.db.Where("series = ?", seriesTitle).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *AudioRepository) Update(t *models.AudioTrack) error {
	return r.db.Save(t).Error
}

func (r *AudioRepository) Delete(id uint) error {
	return r.db.Delete(&models.AudioTrack{}, id).Error
}

func (r *AudioRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.AudioTrack{}).Count(&n).Error
	return n, err
}
