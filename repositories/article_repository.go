package repositories

import (
	"conduit-api/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetBySlug(slug string) (*models.Article, error)
	ExistsBySlug(slug string) (bool, error)
	GetList(params models.ArticleListParams, favoritedByID uint) ([]models.Article, int64, error)
	GetFeed(authorIDs []uint, limit, offset int) ([]models.Article, int64, error)
	Update(article *models.Article) error
	Delete(article *models.Article) error
	AddFavorite(article *models.Article, user *models.User) error
	RemoveFavorite(article *models.Article, user *models.User) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").
		Preload("Tags").
		Preload("FavoritedBy").
		Where("slug = ?", slug).
		First(&article).Error
	return &article, err
}

func (r *articleRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// GetList composes the optional tag, author and favoriter predicates into a
// single query, newest first. A favoritedByID of zero means the filter is
// unset; resolving the favoriter username is the service's job.
func (r *articleRepository) GetList(params models.ArticleListParams, favoritedByID uint) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).
		Preload("Author").
		Preload("Tags").
		Preload("FavoritedBy")

	if params.Tag != "" {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name = ?", params.Tag)
	}

	if params.Author != "" {
		query = query.Joins("JOIN users AS authors ON authors.id = articles.author_id").
			Where("authors.username = ?", params.Author)
	}

	if favoritedByID > 0 {
		query = query.Joins("JOIN article_favorites ON article_favorites.article_id = articles.id").
			Where("article_favorites.user_id = ?", favoritedByID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("articles.created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) GetFeed(authorIDs []uint, limit, offset int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).
		Preload("Author").
		Preload("Tags").
		Preload("FavoritedBy").
		Where("articles.author_id IN ?", authorIDs)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("articles.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepository) Delete(article *models.Article) error {
	return r.db.Delete(article).Error
}

func (r *articleRepository) AddFavorite(article *models.Article, user *models.User) error {
	return r.db.Model(article).Association("FavoritedBy").Append(user)
}

func (r *articleRepository) RemoveFavorite(article *models.Article, user *models.User) error {
	return r.db.Model(article).Association("FavoritedBy").Delete(user)
}
