package repository

import (
	"markaz/internal/models"

	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(p *models.Photo) error {
	return r.db.Create(p).Error
}

func (r *PhotoRepository) GetByID(id uint) (*models.Photo, error) {
	var p models.Photo
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByAlbum returns photos linked by the album title string.
func (r *PhotoRepository) ListByAlbum(albumTitle string) ([]models.Photo, error) {
	var list []models.Photo
	err := r.db.Where("album = ?", albumTitle).Order("created_at ASC").Find(&list).Error
	return list, err
}

func (r *PhotoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Photo{}, id).Error
}

func (r *PhotoRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Photo{}).Count(&n).Error
	return n, err
}
