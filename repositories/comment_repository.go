package repositories

import (
	"conduit-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByIDAndArticle(id uint, slug string) (*models.Comment, error)
	ListByArticle(slug string) ([]models.Comment, error)
	Delete(comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByIDAndArticle(id uint, slug string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ? AND article_slug = ?", id, slug).First(&comment).Error
	return &comment, err
}

func (r *commentRepository) ListByArticle(slug string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("article_slug = ?", slug).Order("created_at").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Delete(comment *models.Comment) error {
	return r.db.Delete(comment).Error
}
