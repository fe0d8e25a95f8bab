package repositories

import (
	"conduit-api/models"

	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *models.Tag) error
	GetByName(name string) (*models.Tag, error)
	ListUsedNames() ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

// ListUsedNames returns the distinct tag names referenced by at least one
// article.
func (r *tagRepository) ListUsedNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.Tag{}).
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Distinct().
		Order("tags.name").
		Pluck("tags.name", &names).Error
	return names, err
}
