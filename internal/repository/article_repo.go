package repository

import (
	"markaz/internal/models"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(a *models.Article) error {
	return r.db.Create(a).Error
}

func (r *ArticleRepository) GetByID(id uint) (*models.Article, error) {
	var a models.Article
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListPublished returns publicly visible articles, newest first.
func (r *ArticleRepository) ListPublished(category string, limit, offset int) ([]models.Article, int64, error) {
	q := r.db.Model(&models.Article{}).Where("published = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Article
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

// ListAll returns every article for the back office.
func (r *ArticleRepository) ListAll(limit, offset int) ([]models.Article, int64, error) {
	var total int64
	if err := r.db.Model(&models.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Article
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *ArticleRepository) Update(a *models.Article) error {
	return r.db.Save(a).Error
}

func (r *ArticleRepository) SetPublished(id uint, published bool) error {
	return r.db.Model(&models.Article{}).Where("id = ?", id).Update("published", published).Error
}

func (r *ArticleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

func (r *ArticleRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Article{}).Count(&n).Error
	return n, err
}
