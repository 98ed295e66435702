package repository

import (
	"strings"

	"markaz/internal/models"

	"gorm.io/gorm"
)

type AlbumRepository struct {
	db *gorm.DB
}

func NewAlbumRepository(db *gorm.DB) *AlbumRepository {
	return &AlbumRepository{db: db}
}

func (r *AlbumRepository) Create(a *models.Album) error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyTitle
	}
	return r.db.Create(a).Error
}

func (r *AlbumRepository) GetByID(id uint) (*models.Album, error) {
	var a models.Album
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlbumRepository) List(limit, offset int) ([]models.Album, error) {
	var list []models.Album
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *AlbumRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Album{}).Count(&n).Error
	return n, err
}

func (r *AlbumRepository) Delete(id uint) error {
	return r.db.Delete(&models.Album{}, id).Error
}

type AlbumUpdate struct {
	Title       string
	Description *string
	CoverURL    *string
}

// RenameAndPropagate updates the album and relinks every photo carrying the
// old title when the title changed. All writes share one transaction.
func (r *AlbumRepository) RenameAndPropagate(id uint, upd AlbumUpdate) (*models.Album, int64, error) {
	if strings.TrimSpace(upd.Title) == "" {
		return nil, 0, ErrEmptyTitle
	}
	var a models.Album
	var relinked int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, id).Error; err != nil {
			return err
		}
		oldTitle := a.Title
		a.Title = upd.Title
		if upd.Description != nil {
			a.Description = *upd.Description
		}
		if upd.CoverURL != nil {
			a.CoverURL = *upd.CoverURL
		}
		if err := tx.Save(&a).Error; err != nil {
			return err
		}
		if upd.Title == oldTitle {
			return nil
		}
		n, err := propagateTitle(tx, &models.Photo{}, "album", oldTitle, upd.Title)
		if err != nil {
			return err
		}
		relinked = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &a, relinked, nil
}
