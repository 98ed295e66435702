package repository

import (
	"strings"

	"markaz/internal/models"

	"gorm.io/gorm"
)

type SeriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

func (r *SeriesRepository) Create(s *models.Series) error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	return r.db.Create(s).Error
}

func (r *SeriesRepository) GetByID(id uint) (*models.Series, error) {
	var s models.Series
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SeriesRepository) List(category string, limit, offset int) ([]models.Series, error) {
	var list []models.Series
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *SeriesRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Series{}).Count(&n).Error
	return n, err
}

func (r *SeriesRepository) Delete(id uint) error {
	return r.db.Delete(&models.Series{}, id).Error
}

// SeriesUpdate carries the editable fields of a series. Nil pointers leave
// the stored value untouched.
type SeriesUpdate struct {
	Title       string
	Description *string
	Category    *string
	CoverURL    *string
}

// RenameAndPropagate applies upd to the series and, when the title changed,
// rewrites the denormalized link on every audio track that referenced the
// old title. Parent and child writes commit in one transaction; the returned
// count is how many tracks were relinked.
func (r *SeriesRepository) RenameAndPropagate(id uint, upd SeriesUpdate) (*models.Series, int64, error) {
	if strings.TrimSpace(upd.Title) == "" {
		return nil, 0, ErrEmptyTitle
	}
	var s models.Series
	var relinked int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&s, id).Error; err != nil {
			return err
		}
		oldTitle := s.Title
		s.Title = upd.Title
		if upd.Description != nil {
			s.Description = *upd.Description
		}
		if upd.Category != nil {
			s.Category = *upd.Category
		}
		if upd.CoverURL != nil {
			s.CoverURL = *upd.CoverURL
		}
		if err := tx.Save(&s).Error; err != nil {
			return err
		}
		if upd.Title == oldTitle {
			return nil
		}
		n, err := propagateTitle(tx, &models.AudioTrack{}, "series", oldTitle, upd.Title)
		if err != nil {
			return err
		}
		relinked = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &s, relinked, nil
}
