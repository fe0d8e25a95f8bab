package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment references its article by slug only. Deleting an article does not
// cascade to its comments.
type Comment struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Body        string         `json:"body" gorm:"type:text;not null"`
	ArticleSlug string         `json:"article_slug" gorm:"index;not null"`
	Author      string         `json:"author" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
