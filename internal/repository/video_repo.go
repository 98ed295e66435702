package repository

import (
	"markaz/internal/models"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(v *models.Video) error {
	return r.db.Create(v).Error
}

func (r *VideoRepository) GetByID(id uint) (*models.Video, error) {
	var v models.Video
	if err := r.db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ListByPlaylist returns videos linked by the playlist title string.
func (r *VideoRepository) ListByPlaylist(playlistTitle string) ([]models.Video, error) {
	var list []models.Video
	err := r.db.Where("playlist = ?", playlistTitle).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *VideoRepository) Update(v *models.Video) error {
	return r.db.Save(v).Error
}

func (r *VideoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Video{}, id).Error
}

func (r *VideoRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Video{}).Count(&n).Error
	return n, err
}
