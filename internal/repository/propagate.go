package repository

import (
	"errors"

	"gorm.io/gorm"
)

var ErrEmptyTitle = errors.New("title is required")

// titleChunkSize caps how many child rows a single UPDATE addresses. Keeps
// each statement within backend batch limits; every chunk runs inside the
// caller's transaction so a failed chunk aborts the whole rename.
const titleChunkSize = 500

// propagateTitle rewrites the denormalized parent title on every child row
// currently linked by oldTitle. The link is an exact string match. Returns
// the number of children updated.
func propagateTitle(tx *gorm.DB, model interface{}, column, oldTitle, newTitle string) (int64, error) {
	var ids []uint
	if err := tx.Model(model).Where(column+" = ?", oldTitle).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	var updated int64
	for start := 0; start < len(ids); start += titleChunkSize {
		end := start + titleChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		res := tx.Model(model).Where("id IN ?", ids[start:end]).Update(column, newTitle)
		if res.Error != nil {
			return updated, res.Error
		}
		updated += res.RowsAffected
	}
	return updated, nil
}
