package models

import "time"

// Article deletion is a hard delete: a soft-deleted row would keep holding
// the slug's unique index while slug existence checks no longer see it.
type Article struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Body        string    `json:"body" gorm:"type:text"`
	AuthorID    uint      `json:"author_id" gorm:"not null"`
	Author      User      `json:"author" gorm:"foreignKey:AuthorID"`
	Tags        []Tag     `json:"tags" gorm:"many2many:article_tags;"`
	FavoritedBy []User    `json:"-" gorm:"many2many:article_favorites;"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsFavoritedBy reports whether the user favorited the article. The
// FavoritedBy association must be loaded.
func (a *Article) IsFavoritedBy(userID uint) bool {
	for _, u := range a.FavoritedBy {
		if u.ID == userID {
			return true
		}
	}
	return false
}

func (a *Article) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}
