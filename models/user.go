package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"not null"`
	Bio       string         `json:"bio"`
	Image     string         `json:"image"`
	Following []User         `json:"-" gorm:"many2many:user_follows;joinForeignKey:FollowerID;joinReferences:FolloweeID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsFollowing reports whether the user follows the target. The Following
// association must be loaded.
func (u *User) IsFollowing(targetID uint) bool {
	for _, f := range u.Following {
		if f.ID == targetID {
			return true
		}
	}
	return false
}
