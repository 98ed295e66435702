package repository

import (
	"markaz/internal/models"

	"gorm.io/gorm"
)

type EbookRepository struct {
	db *gorm.DB
}

func NewEbookRepository(db *gorm.DB) *EbookRepository {
	return &EbookRepository{db: db}
}

func (r *EbookRepository) Create(e *models.Ebook) error {
	return r.db.Create(e).Error
}

func (r *EbookRepository) GetByID(id uint) (*models.Ebook, error) {
	var e models.Ebook
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EbookRepository) List(limit, offset int) ([]models.Ebook, int64, error) {
	var total int64
	if err := r.db.Model(&models.Ebook{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Ebook
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *EbookRepository) Update(e *models.Ebook) error {
	return r.db.Save(e).Error
}

func (r *EbookRepository) Delete(id uint) error {
	return r.db.Delete(&models.Ebook{}, id).Error
}
