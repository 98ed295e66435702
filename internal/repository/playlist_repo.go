package repository

import (
	"strings"

	"markaz/internal/models"

	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(p *models.Playlist) error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	return r.db.Create(p).Error
}

func (r *PlaylistRepository) GetByID(id uint) (*models.Playlist, error) {
	var p models.Playlist
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlaylistRepository) List(category string, limit, offset int) ([]models.Playlist, error) {
	var list []models.Playlist
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *PlaylistRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Playlist{}).Count(&n).Error
	return n, err
}

func (r *PlaylistRepository) Delete(id uint) error {
	return r.db.Delete(&models.Playlist{}, id).Error
}

type PlaylistUpdate struct {
	Title       string
	Description *string
	Category    *string
	CoverURL    *string
}

// RenameAndPropagate updates the playlist and relinks every video carrying
// the old title when the title changed. All writes share one transaction.
func (r *PlaylistRepository) RenameAndPropagate(id uint, upd PlaylistUpdate) (*models.Playlist, int64, error) {
	if strings.TrimSpace(upd.Title) == "" {
		return nil, 0, ErrEmptyTitle
	}
	var p models.Playlist
	var relinked int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		oldTitle := p.Title
		p.Title = upd.Title
		if upd.Description != nil {
			p.Description = *upd.Description
		}
		if upd.Category != nil {
			p.Category = *upd.Category
		}
		if upd.CoverURL != nil {
			p.CoverURL = *upd.CoverURL
		}
		if err := tx.Save(&p).Error; err != nil {
			return err
		}
		if upd.Title == oldTitle {
			return nil
		}
		n, err := propagateTitle(tx, &models.Video{}, "playlist", oldTitle, upd.Title)
		if err != nil {
			return err
		}
		relinked = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &p, relinked, nil
}
